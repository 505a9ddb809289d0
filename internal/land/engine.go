package land

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// maxRollBonus caps the rarity roll bonus bought with extra seeds
const maxRollBonus = 100

// Engine provides pure planting logic (no DB dependencies)
type Engine struct {
	cfg   config.LandConfig
	rng   utils.RandomSource
	newID func() string
}

// NewEngine creates a new land engine
func NewEngine(cfg config.LandConfig, rng utils.RandomSource) *Engine {
	return &Engine{cfg: cfg, rng: rng, newID: uuid.NewString}
}

// NewLand returns an empty land with the configured slot count
func (e *Engine) NewLand(owner string) *domain.PlayerLand {
	return &domain.PlayerLand{
		ID:    e.newID(),
		Owner: owner,
		Slots: make([]*domain.PlantedFruit, e.cfg.SlotCount),
	}
}

// Deposit credits consumed bag seeds to the land balance. An emptied bag
// deposits nothing.
func (e *Engine) Deposit(land *domain.PlayerLand, amount int64) error {
	if amount == 0 {
		return nil
	}
	return ledger.Credit(&land.SeedBalance, amount)
}

// ReadyAt returns the millisecond timestamp a planted fruit can be harvested
func (e *Engine) ReadyAt(p *domain.PlantedFruit) int64 {
	return p.PlantedAt + e.cfg.GrowMillis()
}

// Plant debits seeds and fills an empty slot with a freshly rolled fruit
func (e *Engine) Plant(land *domain.PlayerLand, slot int, seeds int64, now int64) (*domain.PlantedFruit, error) {
	if err := checkSlot(land, slot); err != nil {
		return nil, err
	}
	if land.Slots[slot] != nil {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotOccupied, slot)
	}
	if seeds <= 0 {
		return nil, fmt.Errorf("%w: seeds %d", domain.ErrInvalidAmount, seeds)
	}
	if seeds > land.SeedBalance {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientSeeds, seeds, land.SeedBalance)
	}

	fruit, err := e.roll(seeds, now)
	if err != nil {
		return nil, err
	}
	if err := ledger.Debit(&land.SeedBalance, seeds); err != nil {
		return nil, err
	}
	land.Slots[slot] = fruit
	return fruit, nil
}

// roll draws fruit type, rarity roll and base weight, in that order
func (e *Engine) roll(seeds int64, now int64) (*domain.PlantedFruit, error) {
	fruitType := domain.FruitLevel(e.rng.IntN(e.cfg.PlantMinLevel, e.cfg.PlantMaxLevel))

	bonus := seeds / e.cfg.RarityBonusDiv
	if bonus > maxRollBonus {
		bonus = maxRollBonus
	}
	rarity := domain.RarityFromRoll(e.rng.IntN(1, 100) + int(bonus))

	base := int64(e.rng.IntN(e.cfg.MinBaseWeight, e.cfg.MaxBaseWeight))
	seedWeight, err := utils.SafeMulInt64(seeds, e.cfg.WeightPerSeed)
	if err != nil {
		return nil, err
	}
	weight, err := utils.SafeAddInt64(base, seedWeight)
	if err != nil {
		return nil, err
	}
	weight, err = utils.SafeAddInt64(weight, int64(rarity)*e.cfg.WeightPerRarity)
	if err != nil {
		return nil, err
	}

	return &domain.PlantedFruit{
		FruitType: fruitType,
		Rarity:    rarity,
		Weight:    weight,
		PlantedAt: now,
	}, nil
}

// Harvest empties a grown slot and returns its fruit
func (e *Engine) Harvest(land *domain.PlayerLand, slot int, now int64) (domain.HarvestedFruit, error) {
	if err := checkSlot(land, slot); err != nil {
		return domain.HarvestedFruit{}, err
	}
	planted := land.Slots[slot]
	if planted == nil {
		return domain.HarvestedFruit{}, fmt.Errorf("%w: slot %d", domain.ErrSlotEmpty, slot)
	}
	if readyAt := e.ReadyAt(planted); now < readyAt {
		return domain.HarvestedFruit{}, fmt.Errorf("%w: slot %d ready in %d ms", domain.ErrNotReady, slot, readyAt-now)
	}
	land.Slots[slot] = nil
	return domain.HarvestedFruit{
		FruitType: planted.FruitType,
		Rarity:    planted.Rarity,
		Weight:    planted.Weight,
	}, nil
}

// PlantBatch plants seedsPerSlot into every empty slot. The whole cost is
// checked before any slot changes, and nothing changes on error.
func (e *Engine) PlantBatch(land *domain.PlayerLand, seedsPerSlot int64, now int64) ([]int, error) {
	empty := land.EmptySlots()
	if len(empty) == 0 {
		return nil, domain.ErrNoEmptySlots
	}
	if seedsPerSlot <= 0 {
		return nil, fmt.Errorf("%w: seeds %d", domain.ErrInvalidAmount, seedsPerSlot)
	}
	total, err := utils.SafeMulInt64(int64(len(empty)), seedsPerSlot)
	if err != nil {
		return nil, err
	}
	if total > land.SeedBalance {
		return nil, fmt.Errorf("%w: need %d for %d slots, have %d", domain.ErrInsufficientSeeds, total, len(empty), land.SeedBalance)
	}

	work := land.Clone()
	for _, slot := range empty {
		if _, err := e.Plant(work, slot, seedsPerSlot, now); err != nil {
			return nil, err
		}
	}
	land.SeedBalance = work.SeedBalance
	land.Slots = work.Slots
	return empty, nil
}

// HarvestedSlot is a fruit taken from a slot by HarvestAll
type HarvestedSlot struct {
	Slot  int
	Fruit domain.HarvestedFruit
}

// HarvestAll empties every grown slot
func (e *Engine) HarvestAll(land *domain.PlayerLand, now int64) ([]HarvestedSlot, error) {
	var out []HarvestedSlot
	for slot, planted := range land.Slots {
		if planted == nil || now < e.ReadyAt(planted) {
			continue
		}
		fruit, err := e.Harvest(land, slot, now)
		if err != nil {
			return nil, err
		}
		out = append(out, HarvestedSlot{Slot: slot, Fruit: fruit})
	}
	if len(out) == 0 {
		return nil, domain.ErrNothingToHarvest
	}
	return out, nil
}

// View resolves per-slot readiness at now
func (e *Engine) View(land *domain.PlayerLand, now int64) *domain.LandView {
	view := &domain.LandView{Land: land, Slots: make([]domain.SlotStatus, len(land.Slots))}
	for i, planted := range land.Slots {
		status := domain.SlotStatus{Index: i, Fruit: planted}
		if planted != nil {
			status.ReadyAt = e.ReadyAt(planted)
			status.Ready = now >= status.ReadyAt
		}
		view.Slots[i] = status
	}
	return view
}

func checkSlot(land *domain.PlayerLand, slot int) error {
	if slot < 0 || slot >= len(land.Slots) {
		return fmt.Errorf("%w: %d (land has %d slots)", domain.ErrInvalidSlot, slot, len(land.Slots))
	}
	return nil
}
