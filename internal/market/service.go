package market

import (
	"context"
	"fmt"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Service defines the inventory and market interface
type Service interface {
	GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error)
	MergeFruits(ctx context.Context, owner string, fruitType domain.FruitLevel, repetitions int) (*domain.FruitInventory, error)
	SellFruit(ctx context.Context, owner string, index int) (*SaleResult, error)
}

// SaleResult is the inventory after a sale and the bag the proceeds were minted into
type SaleResult struct {
	Inventory *domain.FruitInventory `json:"inventory"`
	Sold      domain.HarvestedFruit  `json:"sold"`
	Bag       *domain.SeedBag        `json:"bag"`
}

type service struct {
	repo      repository.Market
	publisher event.Publisher
	clock     utils.Clock
	engine    *Engine
	ledger    *ledger.Engine
}

// NewService creates a new market service
func NewService(repo repository.Market, cfg config.MarketConfig, clock utils.Clock, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		engine:    NewEngine(cfg),
		ledger:    ledger.NewEngine(),
	}
}

// GetInventory returns owner's inventory. An owner who never harvested has an empty one.
func (s *service) GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	inv, err := s.repo.GetInventory(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	if inv == nil {
		return &domain.FruitInventory{Owner: owner, Fruits: []domain.HarvestedFruit{}}, nil
	}
	return inv, nil
}

// MergeFruits merges batches of one fruit type into the next type
func (s *service) MergeFruits(ctx context.Context, owner string, fruitType domain.FruitLevel, repetitions int) (*domain.FruitInventory, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := lockInventory(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	produced, err := s.engine.Merge(inv, fruitType, repetitions)
	if err != nil {
		return nil, err
	}
	if err := tx.SaveInventory(ctx, inv); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Info("Fruits merged", "owner", owner, "fruit", fruitType.Name(), "repetitions", repetitions)
	s.publish(ctx, event.New(domain.EventTypeMarketMerged, owner, domain.MarketMergedPayload{
		Owner:       owner,
		FruitType:   fruitType,
		Repetitions: repetitions,
		Produced:    produced,
		Timestamp:   s.clock.NowMillis(),
	}))
	return inv, nil
}

// SellFruit removes one fruit and mints its price into a new bag
func (s *service) SellFruit(ctx context.Context, owner string, index int) (*SaleResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := lockInventory(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	fruit, price, err := s.engine.Sell(inv, index)
	if err != nil {
		return nil, err
	}
	bag, err := s.ledger.Mint(owner, price)
	if err != nil {
		return nil, err
	}
	if err := tx.SaveInventory(ctx, inv); err != nil {
		return nil, err
	}
	if err := tx.InsertBag(ctx, bag); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	now := s.clock.NowMillis()
	s.publish(ctx, event.New(domain.EventTypeFruitSold, owner, domain.FruitSoldPayload{
		Owner:     owner,
		FruitType: fruit.FruitType,
		Rarity:    fruit.Rarity,
		Weight:    fruit.Weight,
		Price:     price,
		BagID:     bag.ID,
		Timestamp: now,
	}))
	s.publish(ctx, ledger.MintedEvent(bag, domain.MintSourceSale, now))
	return &SaleResult{Inventory: inv, Sold: fruit, Bag: bag}, nil
}

func lockInventory(ctx context.Context, tx repository.MarketTx, owner string) (*domain.FruitInventory, error) {
	inv, err := tx.GetInventoryForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory: %w", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: no inventory for %s", domain.ErrNotFound, owner)
	}
	return inv, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
