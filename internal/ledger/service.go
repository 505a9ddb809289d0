package ledger

import (
	"context"
	"fmt"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Service defines the seed ledger interface. Every call acts on behalf of owner.
type Service interface {
	Mint(ctx context.Context, owner string, amount int64) (*domain.SeedBag, error)
	Merge(ctx context.Context, owner, bagA, bagB string) (*domain.SeedBag, error)
	Spend(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error)
	Add(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error)
	Consume(ctx context.Context, owner, bagID string) (int64, error)
	GetBag(ctx context.Context, owner, bagID string) (*domain.SeedBag, error)
	ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error)
}

type service struct {
	repo      repository.Ledger
	publisher event.Publisher
	clock     utils.Clock
	engine    *Engine
}

// NewService creates a new ledger service. Event timestamps are read from clock.
func NewService(repo repository.Ledger, clock utils.Clock, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		engine:    NewEngine(),
	}
}

// LockOwnedBag loads a bag with a row lock and checks it belongs to owner
func LockOwnedBag(ctx context.Context, tx repository.BagTx, owner, bagID string) (*domain.SeedBag, error) {
	bag, err := tx.GetBagForUpdate(ctx, bagID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock seed bag: %w", err)
	}
	if bag == nil {
		return nil, fmt.Errorf("%w: seed bag %s", domain.ErrNotFound, bagID)
	}
	if bag.Owner != owner {
		return nil, fmt.Errorf("%w: seed bag %s", domain.ErrNotOwner, bagID)
	}
	return bag, nil
}

// Mint creates a new bag for owner
func (s *service) Mint(ctx context.Context, owner string, amount int64) (*domain.SeedBag, error) {
	bag, err := s.engine.Mint(owner, amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertBag(ctx, bag); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Info("Seeds minted", "owner", owner, "bag_id", bag.ID, "amount", amount)
	s.publish(ctx, MintedEvent(bag, domain.MintSourceDirect, s.clock.NowMillis()))
	return bag, nil
}

// Merge destroys two of owner's bags and mints one holding their sum
func (s *service) Merge(ctx context.Context, owner, bagA, bagB string) (*domain.SeedBag, error) {
	if bagA == bagB {
		return nil, fmt.Errorf("%w: cannot merge bag %s with itself", domain.ErrInvalidInput, bagA)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// rows are locked in id order so merge(a, b) and merge(b, a) cannot deadlock
	first, second := bagA, bagB
	if second < first {
		first, second = second, first
	}
	lo, err := LockOwnedBag(ctx, tx, owner, first)
	if err != nil {
		return nil, err
	}
	hi, err := LockOwnedBag(ctx, tx, owner, second)
	if err != nil {
		return nil, err
	}
	a, b := lo, hi
	if first != bagA {
		a, b = hi, lo
	}

	merged, err := s.engine.Merge(a, b)
	if err != nil {
		return nil, err
	}

	if err := tx.DeleteBag(ctx, a.ID); err != nil {
		return nil, err
	}
	if err := tx.DeleteBag(ctx, b.ID); err != nil {
		return nil, err
	}
	if err := tx.InsertBag(ctx, merged); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.publish(ctx, event.New(domain.EventTypeSeedsMerged, owner, domain.SeedsMergedPayload{
		Owner:     owner,
		BagID:     merged.ID,
		Merged:    []string{a.ID, b.ID},
		Balance:   merged.Balance,
		Timestamp: s.clock.NowMillis(),
	}))
	return merged, nil
}

// Spend removes seeds from one of owner's bags
func (s *service) Spend(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error) {
	bag, err := s.updateBag(ctx, owner, bagID, func(bag *domain.SeedBag) error {
		return s.engine.Spend(bag, amount)
	})
	if err != nil {
		return nil, err
	}
	s.publishChanged(ctx, domain.EventTypeSeedsSpent, bag, amount)
	return bag, nil
}

// Add puts seeds into one of owner's bags
func (s *service) Add(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error) {
	bag, err := s.updateBag(ctx, owner, bagID, func(bag *domain.SeedBag) error {
		return s.engine.Add(bag, amount)
	})
	if err != nil {
		return nil, err
	}
	s.publishChanged(ctx, domain.EventTypeSeedsAdded, bag, amount)
	return bag, nil
}

func (s *service) updateBag(ctx context.Context, owner, bagID string, mutate func(*domain.SeedBag) error) (*domain.SeedBag, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	bag, err := LockOwnedBag(ctx, tx, owner, bagID)
	if err != nil {
		return nil, err
	}
	if err := mutate(bag); err != nil {
		return nil, err
	}
	if err := tx.UpdateBag(ctx, bag); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return bag, nil
}

// Consume destroys one of owner's bags and returns its balance
func (s *service) Consume(ctx context.Context, owner, bagID string) (int64, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	bag, err := LockOwnedBag(ctx, tx, owner, bagID)
	if err != nil {
		return 0, err
	}
	amount := s.engine.Consume(bag)
	if err := tx.DeleteBag(ctx, bag.ID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	s.publish(ctx, ConsumedEvent(owner, bag.ID, amount, s.clock.NowMillis()))
	return amount, nil
}

// ConsumedEvent builds the seeds.consumed event stamped at nowMillis
func ConsumedEvent(owner, bagID string, amount, nowMillis int64) event.Event {
	return event.New(domain.EventTypeSeedsConsumed, owner, domain.SeedsConsumedPayload{
		Owner:     owner,
		BagID:     bagID,
		Amount:    amount,
		Timestamp: nowMillis,
	})
}

// GetBag returns one of owner's bags
func (s *service) GetBag(ctx context.Context, owner, bagID string) (*domain.SeedBag, error) {
	bag, err := s.repo.GetBag(ctx, bagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seed bag: %w", err)
	}
	if bag == nil {
		return nil, fmt.Errorf("%w: seed bag %s", domain.ErrNotFound, bagID)
	}
	if bag.Owner != owner {
		return nil, fmt.Errorf("%w: seed bag %s", domain.ErrNotOwner, bagID)
	}
	return bag, nil
}

// ListBags returns every bag owner holds
func (s *service) ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error) {
	bags, err := s.repo.ListBags(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list seed bags: %w", err)
	}
	return bags, nil
}
