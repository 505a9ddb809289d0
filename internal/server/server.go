package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/younglafire/fruitfarm/internal/account"
	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/game"
	"github.com/younglafire/fruitfarm/internal/handler"
	"github.com/younglafire/fruitfarm/internal/land"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/market"
	"github.com/younglafire/fruitfarm/internal/metrics"
	"github.com/younglafire/fruitfarm/internal/middleware"
	"github.com/younglafire/fruitfarm/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	// Health is pinged by /readyz; nil means always ready
	Health handler.HealthChecker
}

// Services are the domain services the routes call into
type Services struct {
	Accounts account.Service
	Ledger   ledger.Service
	Game     game.Service
	Land     land.Service
	Market   market.Service
	EventLog eventlog.Service
	Hub      *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svcs Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svcs),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full route tree
func NewRouter(opts Options, svcs Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz(opts.Version))
	r.Get("/readyz", handler.HandleReadyz(opts.Health))
	r.Handle("/metrics", promhttp.Handler())

	seeds := handler.NewSeedsHandler(svcs.Ledger)
	games := handler.NewGameHandler(svcs.Game)
	lands := handler.NewLandHandler(svcs.Land)
	markets := handler.NewMarketHandler(svcs.Market)
	events := handler.NewEventsHandler(svcs.EventLog)
	accounts := middleware.NewAccountResolver(svcs.Accounts)

	r.Route("/api/v1", func(r chi.Router) {
		// observers are not scoped to a caller
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.HandleList)
			r.Get("/export", events.HandleExport)
			if svcs.Hub != nil {
				r.Get("/stream", sse.Handler(svcs.Hub))
				r.Get("/ws", sse.WebSocketHandler(svcs.Hub))
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(accounts.Resolve)

			r.Route("/seeds", func(r chi.Router) {
				r.Get("/", seeds.HandleList)
				r.Post("/mint", seeds.HandleMint)
				r.Post("/merge", seeds.HandleMerge)
				r.Post("/spend", seeds.HandleSpend)
				r.Post("/add", seeds.HandleAdd)
				r.Post("/consume", seeds.HandleConsume)
			})

			r.Route("/game", func(r chi.Router) {
				r.Get("/", games.HandleGet())
				r.Post("/start", games.HandleStart())
				r.Post("/drop", games.HandleDrop())
				r.Post("/merge", games.HandleMerge())
				r.Post("/claim", games.HandleClaim())
				r.Post("/harvest", games.HandleHarvest())
				r.Post("/over", games.HandleOver())
				r.Post("/reset", games.HandleReset())
				r.Post("/withdraw", games.HandleWithdraw())
			})

			r.Route("/land", func(r chi.Router) {
				r.Get("/", lands.HandleGet)
				r.Post("/", lands.HandleCreate)
				r.Post("/deposit", lands.HandleDeposit)
				r.Post("/plant", lands.HandlePlant)
				r.Post("/plant-batch", lands.HandlePlantBatch)
				r.Post("/harvest", lands.HandleHarvest)
				r.Post("/harvest-all", lands.HandleHarvestAll)
			})

			r.Get("/inventory", markets.HandleInventory)
			r.Route("/market", func(r chi.Router) {
				r.Post("/merge", markets.HandleMerge)
				r.Post("/sell", markets.HandleSell)
			})
		})
	})

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
