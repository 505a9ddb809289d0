package domain

// Event type constants used for event bus subscriptions, the event log and
// metrics. Every state transition publishes exactly one of these.
//
// Event types follow the pattern: <entity>.<action> (e.g., "land.planted")
const (
	// Seed ledger
	EventTypeSeedsMinted   = "seeds.minted"
	EventTypeSeedsMerged   = "seeds.merged"
	EventTypeSeedsSpent    = "seeds.spent"
	EventTypeSeedsAdded    = "seeds.added"
	EventTypeSeedsConsumed = "seeds.consumed"

	// Game session
	EventTypeGameStarted      = "game.started"
	EventTypeFruitDropped     = "game.fruit_dropped"
	EventTypeFruitsMerged     = "game.fruits_merged"
	EventTypeClaimStarted     = "game.claim_started"
	EventTypeClaimReady       = "game.claim_ready"
	EventTypeHarvestCompleted = "game.harvest_completed"
	EventTypeGameOver         = "game.over"
	EventTypeGameReset        = "game.reset"
	EventTypeSeedsWithdrawn   = "game.seeds_withdrawn"

	// Land
	EventTypeLandCreated    = "land.created"
	EventTypeSeedsDeposited = "land.seeds_deposited"
	EventTypeFruitPlanted   = "land.planted"
	EventTypeFruitHarvested = "land.harvested"

	// Market
	EventTypeMarketMerged = "market.fruits_merged"
	EventTypeFruitSold    = "market.fruit_sold"
)

// AllEventTypes lists every domain event type, for subscribers that observe everything
var AllEventTypes = []string{
	EventTypeSeedsMinted,
	EventTypeSeedsMerged,
	EventTypeSeedsSpent,
	EventTypeSeedsAdded,
	EventTypeSeedsConsumed,
	EventTypeGameStarted,
	EventTypeFruitDropped,
	EventTypeFruitsMerged,
	EventTypeClaimStarted,
	EventTypeClaimReady,
	EventTypeHarvestCompleted,
	EventTypeGameOver,
	EventTypeGameReset,
	EventTypeSeedsWithdrawn,
	EventTypeLandCreated,
	EventTypeSeedsDeposited,
	EventTypeFruitPlanted,
	EventTypeFruitHarvested,
	EventTypeMarketMerged,
	EventTypeFruitSold,
}
