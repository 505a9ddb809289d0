package bootstrap

import (
	"context"
	"log/slog"

	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/scheduler"
	"github.com/younglafire/fruitfarm/internal/server"
	"github.com/younglafire/fruitfarm/internal/sse"
	"github.com/younglafire/fruitfarm/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting requests)
// 2. scheduler and worker pool (no new background jobs)
// 3. event publisher (flush pending events to the bus)
// 4. stream hub (disconnect clients after the last events went out)
// 5. storage
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
