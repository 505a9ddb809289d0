// Command app serves the fruitfarm HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/younglafire/fruitfarm/internal/bootstrap"
	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/scheduler"
	"github.com/younglafire/fruitfarm/internal/server"
	"github.com/younglafire/fruitfarm/internal/sse"
	"github.com/younglafire/fruitfarm/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	gameCfg, err := bootstrap.LoadGameConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		_ = publisher.Shutdown(context.Background())
		return err
	}

	hub := sse.NewHub()
	hub.Start()

	svcs := bootstrap.InitializeServices(cfg, gameCfg, repos, publisher, hub)
	bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: svcs.EventLog,
		Hub:             hub,
	})

	pool := worker.NewPool(bootstrap.WorkerPoolSize, bootstrap.WorkerPoolQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.EventLogCleanupEvery > 0 {
		sched.Schedule(cfg.EventLogCleanupEvery, eventlog.NewCleanupJob(svcs.EventLog, cfg.EventLogRetentionDays), true)
	}

	opts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}
	if repos.Pool != nil {
		opts.Health = repos.Pool
	}
	srv := server.NewServer(opts, svcs)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})
	return err
}
