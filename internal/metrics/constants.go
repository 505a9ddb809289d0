package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSeedsMinted      = "seeds_minted_total"
	MetricNameSeedsSpent       = "seeds_spent_total"
	MetricNameSeedsDeposited   = "seeds_deposited_total"
	MetricNameGameMerges       = "game_merges_total"
	MetricNameGameOvers        = "game_overs_total"
	MetricNameFruitsPlanted    = "fruits_planted_total"
	MetricNameFruitsHarvested  = "fruits_harvested_total"
	MetricNameMarketMerges     = "market_merges_total"
	MetricNameFruitsSold       = "fruits_sold_total"
	MetricNameSSEClients       = "sse_clients"
	MetricNameEventLogWrites   = "eventlog_writes_total"
	MetricNameEventLogFailures = "eventlog_write_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSeedsMinted      = "Total seeds minted into bags, by source"
	HelpTextSeedsSpent       = "Total seeds spent from bags"
	HelpTextSeedsDeposited   = "Total seeds deposited into land"
	HelpTextGameMerges       = "Total board merges, by produced fruit"
	HelpTextGameOvers        = "Total game sessions that ended"
	HelpTextFruitsPlanted    = "Total fruits planted, by rarity"
	HelpTextFruitsHarvested  = "Total fruits harvested, by fruit"
	HelpTextMarketMerges     = "Total inventory merges, by produced fruit"
	HelpTextFruitsSold       = "Total fruits sold, by fruit"
	HelpTextSSEClients       = "Current number of connected stream clients"
	HelpTextEventLogWrites   = "Total events written to the event log"
	HelpTextEventLogFailures = "Total events the event log failed to write"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelSource = "source"
	LabelFruit  = "fruit"
	LabelRarity = "rarity"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
