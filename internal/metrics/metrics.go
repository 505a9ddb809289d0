package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	EventLogWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEventLogWrites,
			Help: HelpTextEventLogWrites,
		},
	)

	EventLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEventLogFailures,
			Help: HelpTextEventLogFailures,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)
)

// Business Metrics
var (
	SeedsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSeedsMinted,
			Help: HelpTextSeedsMinted,
		},
		[]string{LabelSource},
	)

	SeedsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSeedsSpent,
			Help: HelpTextSeedsSpent,
		},
	)

	SeedsDeposited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSeedsDeposited,
			Help: HelpTextSeedsDeposited,
		},
	)

	GameMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGameMerges,
			Help: HelpTextGameMerges,
		},
		[]string{LabelFruit},
	)

	GameOvers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGameOvers,
			Help: HelpTextGameOvers,
		},
	)

	FruitsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFruitsPlanted,
			Help: HelpTextFruitsPlanted,
		},
		[]string{LabelRarity},
	)

	FruitsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFruitsHarvested,
			Help: HelpTextFruitsHarvested,
		},
		[]string{LabelFruit},
	)

	MarketMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketMerges,
			Help: HelpTextMarketMerges,
		},
		[]string{LabelFruit},
	)

	FruitsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFruitsSold,
			Help: HelpTextFruitsSold,
		},
		[]string{LabelFruit},
	)
)
