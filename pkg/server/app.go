package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TradeDeck/internal/usecase"
	"TradeDeck/pkg/cache"
	"TradeDeck/pkg/config"
	xhttp "TradeDeck/pkg/http"
	"TradeDeck/pkg/logger"
)

// App owns the process lifecycle: the refresh loop, the HTTP server, and
// orderly shutdown on SIGINT/SIGTERM.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	refresher *usecase.Refresher
	http      *xhttp.Server
	cache     cache.Service
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, log *logger.Logger, refresher *usecase.Refresher, httpServer *xhttp.Server, c cache.Service) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		refresher: refresher,
		http:      httpServer,
		cache:     c,
	}
}

// Run starts all components and blocks until a shutdown signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.refresher.Start(ctx); err != nil {
		return err
	}

	if err := a.http.Start(); err != nil {
		return err
	}

	a.log.Info("application started",
		logger.String("environment", a.cfg.Environment),
		logger.Int("port", a.cfg.Server.Port),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	a.refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.http.Stop(ctx); err != nil {
		a.log.Error("http shutdown failed", logger.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.log.Error("cache close failed", logger.Error(err))
	}

	a.log.Info("application stopped")
	return nil
}
