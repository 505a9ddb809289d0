package domain

import "time"

// SeedBag holds a balance of seeds owned by a single account
type SeedBag struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeedsMintedPayload is the event payload for seeds.minted events
type SeedsMintedPayload struct {
	Owner     string `json:"owner"`
	BagID     string `json:"bag_id"`
	Amount    int64  `json:"amount"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// SeedsMergedPayload is the event payload for seeds.merged events
type SeedsMergedPayload struct {
	Owner     string   `json:"owner"`
	BagID     string   `json:"bag_id"`
	Merged    []string `json:"merged"`
	Balance   int64    `json:"balance"`
	Timestamp int64    `json:"timestamp"`
}

// SeedsChangedPayload is the event payload for seeds.spent and seeds.added events
type SeedsChangedPayload struct {
	Owner     string `json:"owner"`
	BagID     string `json:"bag_id"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
	Timestamp int64  `json:"timestamp"`
}

// SeedsConsumedPayload is the event payload for seeds.consumed events
type SeedsConsumedPayload struct {
	Owner     string `json:"owner"`
	BagID     string `json:"bag_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Seed mint sources
const (
	MintSourceDirect   = "direct"
	MintSourceWithdraw = "game_withdraw"
	MintSourceSale     = "market_sale"
)
