package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/younglafire/fruitfarm/internal/account"
	"github.com/younglafire/fruitfarm/internal/database/postgres"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/utils"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Mint a starter seed bag for an address <address> <amount>"
}

func (c *SeedCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: seed <address> <amount>")
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount < 1 {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	pool, cfg, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	accounts := account.NewService(postgres.NewAccountRepository(pool), cfg.AccountCacheSize, cfg.AccountCacheTTL)
	acct, err := accounts.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	// no publisher: seeding is not a player action
	seeds := ledger.NewService(postgres.NewLedgerRepository(pool), utils.NewSystemClock(), nil)
	bag, err := seeds.Mint(ctx, acct.Address, amount)
	if err != nil {
		return err
	}
	PrintSuccess("Minted bag %s with %d seeds for %s", bag.ID, bag.Balance, acct.Address)
	return nil
}
