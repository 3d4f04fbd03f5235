package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/config"
	"github.com/bobmcallan/fmp-mcp/internal/fmp"
	"github.com/bobmcallan/fmp-mcp/internal/server"
	"github.com/bobmcallan/fmp-mcp/internal/tools"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "fmp-mcp.toml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	common.LoadVersionFromFile()

	logger := common.NewLoggerFromConfig(cfg.Logging)

	if cfg.FMP.APIKey == "" {
		logger.Warn().Msg("no FMP API key configured — tool calls will fail until FMP_API_KEY is set")
	}

	client := fmp.NewClient(cfg.FMP.BaseURL, cfg.FMP.APIKey, cfg.FMP.GetTimeout(), logger)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithInstructions(tools.ServerInstructions),
	)

	toolCount := tools.Register(mcpSrv, client, logger)
	logger.Info().Int("tools", toolCount).Str("upstream", client.BaseURL()).Msg("tool registry loaded")

	if *stdio {
		// Stdio transport — reads stdin, writes stdout
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	srv := server.New(cfg, logger, streamable)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("http server error")
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Str("error", err.Error()).Msg("shutdown error")
			os.Exit(1)
		}
	}
}
