package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// BagTx is the seed bag surface shared by every transaction that touches bags
type BagTx interface {
	// GetBagForUpdate returns the bag with a row lock, or nil when absent
	GetBagForUpdate(ctx context.Context, bagID string) (*domain.SeedBag, error)
	InsertBag(ctx context.Context, bag *domain.SeedBag) error
	UpdateBag(ctx context.Context, bag *domain.SeedBag) error
	DeleteBag(ctx context.Context, bagID string) error
}

// InventoryTx is the inventory surface shared by land harvests and market operations
type InventoryTx interface {
	// GetInventoryForUpdate returns the inventory with a row lock, or nil when absent
	GetInventoryForUpdate(ctx context.Context, owner string) (*domain.FruitInventory, error)
	SaveInventory(ctx context.Context, inv *domain.FruitInventory) error
}
