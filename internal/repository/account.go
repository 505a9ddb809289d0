package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Account persists caller identities
type Account interface {
	// GetAccountByAddress returns the account, or nil when none exists
	GetAccountByAddress(ctx context.Context, address string) (*domain.Account, error)

	// UpsertAccount inserts the account, returning the stored row when the address already exists
	UpsertAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
