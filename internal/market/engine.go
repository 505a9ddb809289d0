package market

import (
	"fmt"

	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/utils"
)

// Engine provides deterministic inventory merge and pricing (no DB dependencies)
type Engine struct {
	cfg config.MarketConfig
}

// NewEngine creates a new market engine
func NewEngine(cfg config.MarketConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Merge folds MergeBatchSize records of fruitType into one record of the next
// type, repetitions times. Either every repetition applies or the inventory
// is left unchanged.
func (e *Engine) Merge(inv *domain.FruitInventory, fruitType domain.FruitLevel, repetitions int) ([]domain.HarvestedFruit, error) {
	if repetitions < 1 || repetitions > e.cfg.MaxRepetitions {
		return nil, fmt.Errorf("%w: repetitions must be between 1 and %d", domain.ErrInvalidInput, e.cfg.MaxRepetitions)
	}
	if !fruitType.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidFruit, fruitType)
	}
	if fruitType >= domain.MaxFruitLevel {
		return nil, fmt.Errorf("%w: %s", domain.ErrMaxLevel, fruitType.Name())
	}

	fruits := append([]domain.HarvestedFruit(nil), inv.Fruits...)
	produced := make([]domain.HarvestedFruit, 0, repetitions)
	for r := 0; r < repetitions; r++ {
		var (
			merged domain.HarvestedFruit
			err    error
		)
		fruits, merged, err = e.mergeOnce(fruits, fruitType)
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", r+1, err)
		}
		produced = append(produced, merged)
	}

	inv.Fruits = fruits
	return produced, nil
}

// mergeOnce takes the last MergeBatchSize records of fruitType, scanning from
// the end, and appends their merged result
func (e *Engine) mergeOnce(fruits []domain.HarvestedFruit, fruitType domain.FruitLevel) ([]domain.HarvestedFruit, domain.HarvestedFruit, error) {
	take := make(map[int]bool, e.cfg.MergeBatchSize)
	for i := len(fruits) - 1; i >= 0 && len(take) < e.cfg.MergeBatchSize; i-- {
		if fruits[i].FruitType == fruitType {
			take[i] = true
		}
	}
	if len(take) < e.cfg.MergeBatchSize {
		return nil, domain.HarvestedFruit{}, fmt.Errorf("%w: need %d %s, have %d",
			domain.ErrNotEnoughFruits, e.cfg.MergeBatchSize, fruitType.Name(), len(take))
	}

	var total int64
	kept := make([]domain.HarvestedFruit, 0, len(fruits)-len(take)+1)
	for i, f := range fruits {
		if !take[i] {
			kept = append(kept, f)
			continue
		}
		sum, err := utils.SafeAddInt64(total, f.Weight)
		if err != nil {
			return nil, domain.HarvestedFruit{}, err
		}
		total = sum
	}

	next := fruitType + 1
	merged := domain.HarvestedFruit{
		FruitType: next,
		Rarity:    domain.RarityFromWeight(next, total),
		Weight:    total,
	}
	return append(kept, merged), merged, nil
}

// Price returns the seeds a fruit sells for: base × type × rarity% / 100, at least 1
func (e *Engine) Price(f domain.HarvestedFruit) (int64, error) {
	price, err := utils.SafeMulInt64(e.cfg.SellBasePrice, int64(f.FruitType))
	if err != nil {
		return 0, err
	}
	price, err = utils.SafeMulInt64(price, domain.RarityMultiplier(f.Rarity))
	if err != nil {
		return 0, err
	}
	price /= 100
	if price < 1 {
		price = 1
	}
	return price, nil
}

// Sell removes the record at index and returns it with its price
func (e *Engine) Sell(inv *domain.FruitInventory, index int) (domain.HarvestedFruit, int64, error) {
	if index < 0 || index >= len(inv.Fruits) {
		return domain.HarvestedFruit{}, 0, fmt.Errorf("%w: %d (inventory has %d)", domain.ErrInvalidIndex, index, len(inv.Fruits))
	}
	fruit := inv.Fruits[index]
	price, err := e.Price(fruit)
	if err != nil {
		return domain.HarvestedFruit{}, 0, err
	}
	fruits := append([]domain.HarvestedFruit(nil), inv.Fruits[:index]...)
	inv.Fruits = append(fruits, inv.Fruits[index+1:]...)
	return fruit, price, nil
}
