package land

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Service defines the land feature interface. Every call acts on owner's land.
type Service interface {
	CreateLand(ctx context.Context, owner string) (*domain.PlayerLand, error)
	GetLand(ctx context.Context, owner string) (*domain.LandView, error)
	DepositSeeds(ctx context.Context, owner, bagID string) (*domain.PlayerLand, error)
	PlantInSlot(ctx context.Context, owner string, slot int, seeds int64) (*domain.PlayerLand, error)
	PlantBatch(ctx context.Context, owner string, seedsPerSlot int64) (*domain.PlayerLand, error)
	HarvestSlot(ctx context.Context, owner string, slot int) (*HarvestResult, error)
	HarvestAll(ctx context.Context, owner string) (*HarvestResult, error)
}

// HarvestResult is the land after a harvest plus what moved into the inventory
type HarvestResult struct {
	Land      *domain.PlayerLand      `json:"land"`
	Harvested []domain.HarvestedFruit `json:"harvested"`
}

type service struct {
	repo      repository.Land
	publisher event.Publisher
	clock     utils.Clock
	engine    *Engine
	ledger    *ledger.Engine
}

// NewService creates a new land service
func NewService(repo repository.Land, cfg config.LandConfig, rng utils.RandomSource, clock utils.Clock, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		engine:    NewEngine(cfg, rng),
		ledger:    ledger.NewEngine(),
	}
}

// CreateLand gives owner an empty land. Each owner has at most one.
func (s *service) CreateLand(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	existing, err := tx.GetLandForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock land: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: land for %s", domain.ErrAlreadyExists, owner)
	}

	land := s.engine.NewLand(owner)
	if err := tx.InsertLand(ctx, land); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Info("Land created", "owner", owner, "land_id", land.ID)
	s.publish(ctx, event.New(domain.EventTypeLandCreated, owner, domain.LandCreatedPayload{
		Owner:     owner,
		LandID:    land.ID,
		SlotCount: len(land.Slots),
		Timestamp: s.clock.NowMillis(),
	}))
	return land, nil
}

// GetLand returns owner's land with slot readiness
func (s *service) GetLand(ctx context.Context, owner string) (*domain.LandView, error) {
	land, err := s.repo.GetLand(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get land: %w", err)
	}
	if land == nil {
		return nil, fmt.Errorf("%w: no land for %s", domain.ErrNotFound, owner)
	}
	return s.engine.View(land, s.clock.NowMillis()), nil
}

// DepositSeeds consumes one of owner's bags into the land balance
func (s *service) DepositSeeds(ctx context.Context, owner, bagID string) (*domain.PlayerLand, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	land, err := lockLand(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	bag, err := ledger.LockOwnedBag(ctx, tx, owner, bagID)
	if err != nil {
		return nil, err
	}
	amount := s.ledger.Consume(bag)
	if err := s.engine.Deposit(land, amount); err != nil {
		return nil, err
	}
	if err := tx.DeleteBag(ctx, bag.ID); err != nil {
		return nil, err
	}
	if err := tx.UpdateLand(ctx, land); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.publish(ctx, ledger.ConsumedEvent(owner, bag.ID, amount, s.clock.NowMillis()))
	s.publish(ctx, event.New(domain.EventTypeSeedsDeposited, owner, domain.SeedsDepositedPayload{
		Owner:       owner,
		LandID:      land.ID,
		BagID:       bag.ID,
		Amount:      amount,
		SeedBalance: land.SeedBalance,
		Timestamp:   s.clock.NowMillis(),
	}))
	return land, nil
}

// PlantInSlot spends seeds from the land balance to plant one slot
func (s *service) PlantInSlot(ctx context.Context, owner string, slot int, seeds int64) (*domain.PlayerLand, error) {
	return s.plant(ctx, owner, func(land *domain.PlayerLand, now int64) ([]int, error) {
		if _, err := s.engine.Plant(land, slot, seeds, now); err != nil {
			return nil, err
		}
		return []int{slot}, nil
	})
}

// PlantBatch plants every empty slot with the same seed count
func (s *service) PlantBatch(ctx context.Context, owner string, seedsPerSlot int64) (*domain.PlayerLand, error) {
	return s.plant(ctx, owner, func(land *domain.PlayerLand, now int64) ([]int, error) {
		return s.engine.PlantBatch(land, seedsPerSlot, now)
	})
}

func (s *service) plant(ctx context.Context, owner string, fn func(*domain.PlayerLand, int64) ([]int, error)) (*domain.PlayerLand, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	land, err := lockLand(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	before := land.SeedBalance
	slots, err := fn(land, s.clock.NowMillis())
	if err != nil {
		return nil, err
	}
	if err := tx.UpdateLand(ctx, land); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.FromContext(ctx).Debug("Planted", "owner", owner, "slots", slots, "seeds_used", before-land.SeedBalance)
	for _, slot := range slots {
		p := land.Slots[slot]
		s.publish(ctx, event.New(domain.EventTypeFruitPlanted, owner, domain.FruitPlantedPayload{
			Owner:     owner,
			LandID:    land.ID,
			Slot:      slot,
			SeedsUsed: (before - land.SeedBalance) / int64(len(slots)),
			FruitType: p.FruitType,
			Rarity:    p.Rarity,
			Weight:    p.Weight,
			PlantedAt: p.PlantedAt,
			Timestamp: s.clock.NowMillis(),
		}))
	}
	return land, nil
}

// HarvestSlot moves one grown fruit into owner's inventory
func (s *service) HarvestSlot(ctx context.Context, owner string, slot int) (*HarvestResult, error) {
	return s.harvest(ctx, owner, func(land *domain.PlayerLand, now int64) ([]HarvestedSlot, error) {
		fruit, err := s.engine.Harvest(land, slot, now)
		if err != nil {
			return nil, err
		}
		return []HarvestedSlot{{Slot: slot, Fruit: fruit}}, nil
	})
}

// HarvestAll moves every grown fruit into owner's inventory
func (s *service) HarvestAll(ctx context.Context, owner string) (*HarvestResult, error) {
	return s.harvest(ctx, owner, s.engine.HarvestAll)
}

func (s *service) harvest(ctx context.Context, owner string, fn func(*domain.PlayerLand, int64) ([]HarvestedSlot, error)) (*HarvestResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	land, err := lockLand(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	harvested, err := fn(land, s.clock.NowMillis())
	if err != nil {
		return nil, err
	}

	inv, err := tx.GetInventoryForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory: %w", err)
	}
	if inv == nil {
		inv = &domain.FruitInventory{ID: uuid.NewString(), Owner: owner}
	}
	result := &HarvestResult{Land: land, Harvested: make([]domain.HarvestedFruit, 0, len(harvested))}
	for _, h := range harvested {
		inv.Fruits = append(inv.Fruits, h.Fruit)
		result.Harvested = append(result.Harvested, h.Fruit)
	}

	if err := tx.SaveInventory(ctx, inv); err != nil {
		return nil, err
	}
	if err := tx.UpdateLand(ctx, land); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	for _, h := range harvested {
		s.publish(ctx, event.New(domain.EventTypeFruitHarvested, owner, domain.FruitHarvestedPayload{
			Owner:     owner,
			LandID:    land.ID,
			Slot:      h.Slot,
			FruitType: h.Fruit.FruitType,
			Rarity:    h.Fruit.Rarity,
			Weight:    h.Fruit.Weight,
			Timestamp: s.clock.NowMillis(),
		}))
	}
	return result, nil
}

func lockLand(ctx context.Context, tx repository.LandTx, owner string) (*domain.PlayerLand, error) {
	land, err := tx.GetLandForUpdate(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to lock land: %w", err)
	}
	if land == nil {
		return nil, fmt.Errorf("%w: no land for %s", domain.ErrNotFound, owner)
	}
	return land, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
