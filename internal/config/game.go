package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/younglafire/fruitfarm/internal/validation"
)

// GameConfig is the immutable tuning table injected into every engine.
// Values are copied into engines at construction; nothing mutates them later.
type GameConfig struct {
	Session SessionConfig `yaml:"session" json:"session"`
	Land    LandConfig    `yaml:"land" json:"land"`
	Market  MarketConfig  `yaml:"market" json:"market"`
}

// SessionConfig tunes the merge game state machine
type SessionConfig struct {
	DropsPerClaim int `yaml:"drops_per_claim" json:"drops_per_claim" validate:"min=1"`
	DropMinLevel  int `yaml:"drop_min_level" json:"drop_min_level" validate:"min=1,max=10"`
	DropMaxLevel  int `yaml:"drop_max_level" json:"drop_max_level" validate:"min=1,max=10,gtefield=DropMinLevel"`
	MaxLevel      int `yaml:"max_level" json:"max_level" validate:"min=2,max=10"`
}

// LandConfig tunes planting and harvesting
type LandConfig struct {
	SlotCount       int           `yaml:"slot_count" json:"slot_count" validate:"min=1,max=64"`
	GrowDuration    time.Duration `yaml:"grow_duration" json:"grow_duration" validate:"min=0"`
	PlantMinLevel   int           `yaml:"plant_min_level" json:"plant_min_level" validate:"min=1,max=10"`
	PlantMaxLevel   int           `yaml:"plant_max_level" json:"plant_max_level" validate:"min=1,max=10,gtefield=PlantMinLevel"`
	MinBaseWeight   int           `yaml:"min_base_weight" json:"min_base_weight" validate:"min=1"`
	MaxBaseWeight   int           `yaml:"max_base_weight" json:"max_base_weight" validate:"gtefield=MinBaseWeight"`
	WeightPerSeed   int64         `yaml:"weight_per_seed" json:"weight_per_seed" validate:"min=0"`
	WeightPerRarity int64         `yaml:"weight_per_rarity" json:"weight_per_rarity" validate:"min=0"`
	RarityBonusDiv  int64         `yaml:"rarity_bonus_divisor" json:"rarity_bonus_divisor" validate:"min=1"`
}

// MarketConfig tunes the inventory merge and sale
type MarketConfig struct {
	MergeBatchSize int   `yaml:"merge_batch_size" json:"merge_batch_size" validate:"min=2"`
	MaxRepetitions int   `yaml:"max_repetitions" json:"max_repetitions" validate:"min=1"`
	SellBasePrice  int64 `yaml:"sell_base_price" json:"sell_base_price" validate:"min=1"`
}

// DefaultGameConfig returns the canonical tuning values
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Session: SessionConfig{
			DropsPerClaim: 5,
			DropMinLevel:  1,
			DropMaxLevel:  3,
			MaxLevel:      10,
		},
		Land: LandConfig{
			SlotCount:       6,
			GrowDuration:    15 * time.Second,
			PlantMinLevel:   1,
			PlantMaxLevel:   10,
			MinBaseWeight:   100,
			MaxBaseWeight:   500,
			WeightPerSeed:   5,
			WeightPerRarity: 50,
			RarityBonusDiv:  2,
		},
		Market: MarketConfig{
			MergeBatchSize: 10,
			MaxRepetitions: 100,
			SellBasePrice:  2,
		},
	}
}

// GrowMillis returns the grow duration in milliseconds
func (c LandConfig) GrowMillis() int64 {
	return c.GrowDuration.Milliseconds()
}

// Validate checks struct constraints
func (c GameConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	return nil
}

// LoadGameConfig reads a YAML tuning file over the defaults. A missing file
// yields the defaults. When schemaPath is non-empty the document is first
// checked against the JSON schema.
func LoadGameConfig(path, schemaPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	if schemaPath != "" {
		if err := validation.NewSchemaValidator().ValidateYAML(data, schemaPath); err != nil {
			return cfg, fmt.Errorf("game config %s: %w", path, err)
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse game config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
