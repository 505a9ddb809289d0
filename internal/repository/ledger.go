package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Ledger persists seed bags
type Ledger interface {
	GetBag(ctx context.Context, bagID string) (*domain.SeedBag, error)
	ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error)

	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx defines the interface for seed bag transactions
type LedgerTx interface {
	Tx
	BagTx
}
