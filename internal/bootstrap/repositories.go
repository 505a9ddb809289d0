package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/database"
	"github.com/younglafire/fruitfarm/internal/database/memory"
	"github.com/younglafire/fruitfarm/internal/database/postgres"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// Repositories holds every repository implementation for one storage driver
type Repositories struct {
	Ledger   repository.Ledger
	Game     repository.Game
	Land     repository.Land
	Market   repository.Market
	Account  repository.Account
	EventLog repository.EventLog

	// Pool is the Postgres pool, nil for in-memory storage
	Pool database.Pool
}

// Close releases the storage connection, if any
func (r *Repositories) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
}

// InitializeRepositories opens the configured storage. For Postgres it also
// applies pending migrations.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		slog.Info(LogMsgStorageInitialized, "driver", cfg.StorageDriver)
		return &Repositories{
			Ledger:   memory.NewLedgerRepository(store),
			Game:     memory.NewGameRepository(store),
			Land:     memory.NewLandRepository(store),
			Market:   memory.NewMarketRepository(store),
			Account:  memory.NewAccountRepository(store),
			EventLog: memory.NewEventLogRepository(store),
		}, nil

	case config.StorageDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		slog.Info(LogMsgStorageInitialized, "driver", cfg.StorageDriver, "db_host", cfg.DBHost)
		return &Repositories{
			Ledger:   postgres.NewLedgerRepository(pool),
			Game:     postgres.NewGameRepository(pool),
			Land:     postgres.NewLandRepository(pool),
			Market:   postgres.NewMarketRepository(pool),
			Account:  postgres.NewAccountRepository(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			Pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
	}
}
