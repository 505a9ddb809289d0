package memory

import (
	"context"
	"sort"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/repository"
)

type ledgerRepository struct{ s *Store }

// NewLedgerRepository returns the seed bag repository backed by s
func NewLedgerRepository(s *Store) repository.Ledger {
	return &ledgerRepository{s: s}
}

func (r *ledgerRepository) GetBag(ctx context.Context, bagID string) (*domain.SeedBag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneBag(r.s.bags[bagID]), nil
}

func (r *ledgerRepository) ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bags := []domain.SeedBag{}
	for _, b := range r.s.bags {
		if b.Owner == owner {
			bags = append(bags, *b)
		}
	}
	sort.Slice(bags, func(i, j int) bool {
		if bags[i].CreatedAt.Equal(bags[j].CreatedAt) {
			return bags[i].ID < bags[j].ID
		}
		return bags[i].CreatedAt.Before(bags[j].CreatedAt)
	})
	return bags, nil
}

func (r *ledgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.s.begin(ctx)
}

type gameRepository struct{ s *Store }

// NewGameRepository returns the game session repository backed by s
func NewGameRepository(s *Store) repository.Game {
	return &gameRepository{s: s}
}

func (r *gameRepository) GetSession(ctx context.Context, owner string) (*domain.GameSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[owner]; ok {
		return sess.Clone(), nil
	}
	return nil, nil
}

func (r *gameRepository) BeginTx(ctx context.Context) (repository.GameTx, error) {
	return r.s.begin(ctx)
}

type landRepository struct{ s *Store }

// NewLandRepository returns the land repository backed by s
func NewLandRepository(s *Store) repository.Land {
	return &landRepository{s: s}
}

func (r *landRepository) GetLand(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.lands[owner]; ok {
		return l.Clone(), nil
	}
	return nil, nil
}

func (r *landRepository) BeginTx(ctx context.Context) (repository.LandTx, error) {
	return r.s.begin(ctx)
}

type marketRepository struct{ s *Store }

// NewMarketRepository returns the inventory repository backed by s
func NewMarketRepository(s *Store) repository.Market {
	return &marketRepository{s: s}
}

func (r *marketRepository) GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.inventories[owner]; ok {
		return inv.Clone(), nil
	}
	return nil, nil
}

func (r *marketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	return r.s.begin(ctx)
}

type accountRepository struct{ s *Store }

// NewAccountRepository returns the account repository backed by s
func NewAccountRepository(s *Store) repository.Account {
	return &accountRepository{s: s}
}

func (r *accountRepository) GetAccountByAddress(ctx context.Context, address string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[address]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *accountRepository) UpsertAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[account.Address]; ok {
		c := *a
		return &c, nil
	}
	stored := *account
	stored.CreatedAt = r.s.now()
	r.s.accounts[account.Address] = &stored
	c := stored
	return &c, nil
}
