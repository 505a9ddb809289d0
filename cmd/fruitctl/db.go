package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/database"
)

// openPool connects with the same environment the server reads
func openPool() (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StorageDriver != config.StorageDriverPostgres {
		return nil, nil, fmt.Errorf("STORAGE_DRIVER is %q, this command needs %q", cfg.StorageDriver, config.StorageDriverPostgres)
	}
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}
