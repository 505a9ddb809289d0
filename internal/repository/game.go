package repository

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Game persists merge game sessions
type Game interface {
	// GetSession returns the owner's session, or nil when none exists
	GetSession(ctx context.Context, owner string) (*domain.GameSession, error)

	BeginTx(ctx context.Context) (GameTx, error)
}

// GameTx defines the interface for game session transactions.
// Withdrawing harvested seeds mints a bag in the same transaction.
type GameTx interface {
	Tx
	GetSessionForUpdate(ctx context.Context, owner string) (*domain.GameSession, error)
	InsertSession(ctx context.Context, session *domain.GameSession) error
	UpdateSession(ctx context.Context, session *domain.GameSession) error
	InsertBag(ctx context.Context, bag *domain.SeedBag) error
}
