package main

import (
	"context"
	"fmt"

	"github.com/younglafire/fruitfarm/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply embedded migrations (up) or print the schema version (status)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	subcmd := "up"
	if len(args) > 0 {
		subcmd = args[0]
	}

	pool, _, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		fallthrough
	case "status":
		version, err := database.MigrationVersion(ctx, pool)
		if err != nil {
			return err
		}
		PrintSuccess("Schema at version %d", version)
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q: want up or status", subcmd)
	}
}
