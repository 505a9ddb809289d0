package handler

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/land"
	"github.com/younglafire/fruitfarm/internal/market"
)

// displayName renders a fruit level for people, e.g. "Strawberry"
func displayName(level domain.FruitLevel) string {
	return cases.Title(language.English).String(level.Name())
}

// FruitView is a fruit record with its display name and rarity label
type FruitView struct {
	FruitType   domain.FruitLevel `json:"fruit_type"`
	DisplayName string            `json:"display_name"`
	Rarity      string            `json:"rarity"`
	Weight      int64             `json:"weight"`
}

func newFruitView(f domain.HarvestedFruit) FruitView {
	return FruitView{
		FruitType:   f.FruitType,
		DisplayName: displayName(f.FruitType),
		Rarity:      f.Rarity.String(),
		Weight:      f.Weight,
	}
}

func newFruitViews(fruits []domain.HarvestedFruit) []FruitView {
	out := make([]FruitView, 0, len(fruits))
	for _, f := range fruits {
		out = append(out, newFruitView(f))
	}
	return out
}

// BoardFruitView is one fruit on the game board
type BoardFruitView struct {
	Index       int               `json:"index"`
	Level       domain.FruitLevel `json:"level"`
	DisplayName string            `json:"display_name"`
}

// SessionResponse is a game session with its derived phase
type SessionResponse struct {
	ID             string              `json:"id"`
	Phase          domain.SessionPhase `json:"phase"`
	Score          int64               `json:"score"`
	SeedsPending   int64               `json:"seeds_pending"`
	SeedsHarvested int64               `json:"seeds_harvested"`
	DropsRemaining int                 `json:"drops_remaining"`
	Board          []BoardFruitView    `json:"board"`
}

func newSessionResponse(s *domain.GameSession) SessionResponse {
	board := make([]BoardFruitView, 0, len(s.Board))
	for i, f := range s.Board {
		board = append(board, BoardFruitView{Index: i, Level: f.Level, DisplayName: displayName(f.Level)})
	}
	return SessionResponse{
		ID:             s.ID,
		Phase:          s.Phase(),
		Score:          s.Score,
		SeedsPending:   s.SeedsPending,
		SeedsHarvested: s.SeedsHarvested,
		DropsRemaining: s.DropsRemaining,
		Board:          board,
	}
}

// WithdrawResponse is the session after a withdrawal plus the minted bag
type WithdrawResponse struct {
	Session SessionResponse `json:"session"`
	Bag     *domain.SeedBag `json:"bag"`
}

// HarvestResponse is the land after harvesting plus what went to the inventory
type HarvestResponse struct {
	Land      *domain.PlayerLand `json:"land"`
	Harvested []FruitView        `json:"harvested"`
}

func newHarvestResponse(res *land.HarvestResult) HarvestResponse {
	return HarvestResponse{Land: res.Land, Harvested: newFruitViews(res.Harvested)}
}

// InventoryResponse lists an owner's harvested fruit
type InventoryResponse struct {
	ID     string         `json:"id,omitempty"`
	Fruits []FruitView    `json:"fruits"`
	Counts map[string]int `json:"counts"`
}

func newInventoryResponse(inv *domain.FruitInventory) InventoryResponse {
	counts := make(map[string]int)
	for _, f := range inv.Fruits {
		counts[f.FruitType.Name()]++
	}
	return InventoryResponse{ID: inv.ID, Fruits: newFruitViews(inv.Fruits), Counts: counts}
}

// SaleResponse is the inventory after a sale, the sold fruit and the bag it paid into
type SaleResponse struct {
	Inventory InventoryResponse `json:"inventory"`
	Sold      FruitView         `json:"sold"`
	Bag       *domain.SeedBag   `json:"bag"`
}

func newSaleResponse(res *market.SaleResult) SaleResponse {
	return SaleResponse{
		Inventory: newInventoryResponse(res.Inventory),
		Sold:      newFruitView(res.Sold),
		Bag:       res.Bag,
	}
}
