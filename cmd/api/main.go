package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Chunkwise/internal/app"
	"github.com/markdave123-py/Chunkwise/internal/config"
	"github.com/markdave123-py/Chunkwise/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetDefault().Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.SetupLogger(cfg.LogLevel, cfg.LogJSON, cfg.LogSource)
	log := logger.GetDefault()
	ctx = logger.ContextWithLogger(ctx, log)

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(application.Server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return application.Server.Shutdown(shutdownCtx)
	})

	log.Info("Chunkwise is running", "port", cfg.Port, "strategies", application.DocProcessor.Strategies())
	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("shut down cleanly")
}
