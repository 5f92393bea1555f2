package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobapply-gateway/internal/bootstrap"
	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
	"github.com/honeycarbs/jobapply-gateway/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	app, cleanup, err := bootstrap.InitializeApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize gateway", "err", err)
		os.Exit(1)
	}

	stopped := shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		app.Targets(cleanup)...,
	)

	logger.Info("MCP server initialized and starting", "addr", cfg.HTTP.Addr(), "profile", cfg.Path)

	if err := app.Run(stopped); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		cleanup()
		os.Exit(1)
	}
	logger.Info("MCP server stopped")
}
