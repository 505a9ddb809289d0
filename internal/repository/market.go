package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Market persists fruit inventories
type Market interface {
	// GetInventory returns the owner's inventory, or nil when none exists
	GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error)

	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx defines the interface for market transactions. Selling a fruit
// mints a bag inside the same transaction.
type MarketTx interface {
	Tx
	InventoryTx
	InsertBag(ctx context.Context, bag *domain.SeedBag) error
}
