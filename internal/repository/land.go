package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Land persists player lands
type Land interface {
	// GetLand returns the owner's land, or nil when none exists
	GetLand(ctx context.Context, owner string) (*domain.PlayerLand, error)

	BeginTx(ctx context.Context) (LandTx, error)
}

// LandTx defines the interface for land transactions. Deposits consume a
// bag and harvests write into the inventory inside the same transaction.
type LandTx interface {
	Tx
	BagTx
	InventoryTx
	GetLandForUpdate(ctx context.Context, owner string) (*domain.PlayerLand, error)
	InsertLand(ctx context.Context, land *domain.PlayerLand) error
	UpdateLand(ctx context.Context, land *domain.PlayerLand) error
}
