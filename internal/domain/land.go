package domain

import "time"

// PlantedFruit occupies a land slot until harvested
type PlantedFruit struct {
	FruitType FruitLevel `json:"fruit_type"`
	Rarity    Rarity     `json:"rarity"`
	Weight    int64      `json:"weight"`
	PlantedAt int64      `json:"planted_at"` // unix millis
}

// PlayerLand is a fixed-size array of planting slots. A nil slot is empty.
type PlayerLand struct {
	ID          string          `json:"id"`
	Owner       string          `json:"owner"`
	SeedBalance int64           `json:"seed_balance"`
	Slots       []*PlantedFruit `json:"slots"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EmptySlots returns the indexes of unoccupied slots in ascending order
func (l *PlayerLand) EmptySlots() []int {
	var out []int
	for i, s := range l.Slots {
		if s == nil {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns a deep copy
func (l *PlayerLand) Clone() *PlayerLand {
	c := *l
	c.Slots = make([]*PlantedFruit, len(l.Slots))
	for i, s := range l.Slots {
		if s != nil {
			p := *s
			c.Slots[i] = &p
		}
	}
	return &c
}

// SlotStatus describes one slot for read responses
type SlotStatus struct {
	Index   int           `json:"index"`
	Fruit   *PlantedFruit `json:"fruit,omitempty"`
	ReadyAt int64         `json:"ready_at,omitempty"`
	Ready   bool          `json:"ready"`
}

// LandView is a land with per-slot readiness resolved against a clock
type LandView struct {
	Land  *PlayerLand  `json:"land"`
	Slots []SlotStatus `json:"slot_status"`
}

// LandCreatedPayload is the event payload for land.created events
type LandCreatedPayload struct {
	Owner     string `json:"owner"`
	LandID    string `json:"land_id"`
	SlotCount int    `json:"slot_count"`
	Timestamp int64  `json:"timestamp"`
}

// SeedsDepositedPayload is the event payload for land.seeds_deposited events
type SeedsDepositedPayload struct {
	Owner       string `json:"owner"`
	LandID      string `json:"land_id"`
	BagID       string `json:"bag_id"`
	Amount      int64  `json:"amount"`
	SeedBalance int64  `json:"seed_balance"`
	Timestamp   int64  `json:"timestamp"`
}

// FruitPlantedPayload is the event payload for land.planted events
type FruitPlantedPayload struct {
	Owner     string     `json:"owner"`
	LandID    string     `json:"land_id"`
	Slot      int        `json:"slot"`
	SeedsUsed int64      `json:"seeds_used"`
	FruitType FruitLevel `json:"fruit_type"`
	Rarity    Rarity     `json:"rarity"`
	Weight    int64      `json:"weight"`
	PlantedAt int64      `json:"planted_at"`
	Timestamp int64      `json:"timestamp"`
}

// FruitHarvestedPayload is the event payload for land.harvested events
type FruitHarvestedPayload struct {
	Owner     string     `json:"owner"`
	LandID    string     `json:"land_id"`
	Slot      int        `json:"slot"`
	FruitType FruitLevel `json:"fruit_type"`
	Rarity    Rarity     `json:"rarity"`
	Weight    int64      `json:"weight"`
	Timestamp int64      `json:"timestamp"`
}
