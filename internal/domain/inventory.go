package domain

import "time"

// HarvestedFruit is a fruit record in an inventory. It has no identity beyond
// its position.
type HarvestedFruit struct {
	FruitType FruitLevel `json:"fruit_type"`
	Rarity    Rarity     `json:"rarity"`
	Weight    int64      `json:"weight"`
}

// FruitInventory holds an owner's harvested fruit
type FruitInventory struct {
	ID        string           `json:"id"`
	Owner     string           `json:"owner"`
	Fruits    []HarvestedFruit `json:"fruits"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CountOf returns how many records of a type the inventory holds
func (inv *FruitInventory) CountOf(fruitType FruitLevel) int {
	n := 0
	for _, f := range inv.Fruits {
		if f.FruitType == fruitType {
			n++
		}
	}
	return n
}

// Clone returns a deep copy
func (inv *FruitInventory) Clone() *FruitInventory {
	c := *inv
	c.Fruits = append([]HarvestedFruit(nil), inv.Fruits...)
	return &c
}

// MarketMergedPayload is the event payload for market.fruits_merged events
type MarketMergedPayload struct {
	Owner       string           `json:"owner"`
	FruitType   FruitLevel       `json:"fruit_type"`
	Repetitions int              `json:"repetitions"`
	Produced    []HarvestedFruit `json:"produced"`
	Timestamp   int64            `json:"timestamp"`
}

// FruitSoldPayload is the event payload for market.fruit_sold events
type FruitSoldPayload struct {
	Owner     string     `json:"owner"`
	FruitType FruitLevel `json:"fruit_type"`
	Rarity    Rarity     `json:"rarity"`
	Weight    int64      `json:"weight"`
	Price     int64      `json:"price"`
	BagID     string     `json:"bag_id"`
	Timestamp int64      `json:"timestamp"`
}
