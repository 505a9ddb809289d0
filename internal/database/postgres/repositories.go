package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetBag returns the bag or nil when absent
func (r *LedgerRepository) GetBag(ctx context.Context, bagID string) (*domain.SeedBag, error) {
	return getBag(ctx, r.db, bagID, false)
}

// ListBags returns the owner's bags oldest first
func (r *LedgerRepository) ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, owner, balance, created_at, updated_at
		FROM seed_bags WHERE owner = $1
		ORDER BY created_at, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list seed bags: %w", err)
	}
	defer rows.Close()

	bags := []domain.SeedBag{}
	for rows.Next() {
		var b domain.SeedBag
		if err := rows.Scan(&b.ID, &b.Owner, &b.Balance, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan seed bag: %w", err)
		}
		bags = append(bags, b)
	}
	return bags, rows.Err()
}

// BeginTx starts a seed bag transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return beginTx(ctx, r.db)
}

// GameRepository implements repository.Game for PostgreSQL
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// GetSession returns the owner's session or nil
func (r *GameRepository) GetSession(ctx context.Context, owner string) (*domain.GameSession, error) {
	return getSession(ctx, r.db, owner, false)
}

// BeginTx starts a game transaction
func (r *GameRepository) BeginTx(ctx context.Context) (repository.GameTx, error) {
	return beginTx(ctx, r.db)
}

// LandRepository implements repository.Land for PostgreSQL
type LandRepository struct {
	db *pgxpool.Pool
}

// NewLandRepository creates a new LandRepository
func NewLandRepository(db *pgxpool.Pool) *LandRepository {
	return &LandRepository{db: db}
}

// GetLand returns the owner's land or nil
func (r *LandRepository) GetLand(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	return getLand(ctx, r.db, owner, false)
}

// BeginTx starts a land transaction
func (r *LandRepository) BeginTx(ctx context.Context) (repository.LandTx, error) {
	return beginTx(ctx, r.db)
}

// MarketRepository implements repository.Market for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetInventory returns the owner's inventory or nil
func (r *MarketRepository) GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	return getInventory(ctx, r.db, owner, false)
}

// BeginTx starts a market transaction
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	return beginTx(ctx, r.db)
}

// AccountRepository implements repository.Account for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccountByAddress returns the account or nil
func (r *AccountRepository) GetAccountByAddress(ctx context.Context, address string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx, `
		SELECT id::text, address, created_at FROM accounts WHERE address = $1`, address,
	).Scan(&a.ID, &a.Address, &a.CreatedAt)
	if missing, err := noRows(err); missing {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// UpsertAccount inserts the account or returns the existing row for the address
func (r *AccountRepository) UpsertAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	var a domain.Account
	// the no-op update makes RETURNING yield the existing row on conflict
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (id, address, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (address) DO UPDATE SET address = EXCLUDED.address
		RETURNING id::text, address, created_at`,
		account.ID, account.Address,
	).Scan(&a.ID, &a.Address, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return &a, nil
}

var (
	_ repository.Ledger   = (*LedgerRepository)(nil)
	_ repository.Game     = (*GameRepository)(nil)
	_ repository.Land     = (*LandRepository)(nil)
	_ repository.Market   = (*MarketRepository)(nil)
	_ repository.Account  = (*AccountRepository)(nil)
	_ repository.LandTx   = (*pgTx)(nil)
	_ repository.GameTx   = (*pgTx)(nil)
	_ repository.MarketTx = (*pgTx)(nil)
)
