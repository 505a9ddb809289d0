package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/account"
	"github.com/younglafire/fruitfarm/internal/config"
	"github.com/younglafire/fruitfarm/internal/database/memory"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/game"
	"github.com/younglafire/fruitfarm/internal/land"
	"github.com/younglafire/fruitfarm/internal/ledger"
	"github.com/younglafire/fruitfarm/internal/market"
	"github.com/younglafire/fruitfarm/internal/middleware"
	"github.com/younglafire/fruitfarm/internal/utils"
)

const testAPIKey = "test-api-key"

type testApp struct {
	srv   *httptest.Server
	rng   *utils.ScriptedSource
	clock *utils.ManualClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewStore()
	bus := event.NewMemoryBus()
	pub, err := event.NewResilientPublisher(bus, 0, time.Millisecond, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Shutdown(context.Background()) })

	events := eventlog.NewService(memory.NewEventLogRepository(store))
	events.Subscribe(bus)

	cfg := config.DefaultGameConfig()
	rng := utils.NewScriptedSource()
	clock := utils.NewManualClock(1_000_000)

	router := NewRouter(Options{APIKey: testAPIKey, Version: "test"}, Services{
		Accounts: account.NewService(memory.NewAccountRepository(store), 16, time.Minute),
		Ledger:   ledger.NewService(memory.NewLedgerRepository(store), clock, pub),
		Game:     game.NewService(memory.NewGameRepository(store), cfg.Session, rng, clock, pub),
		Land:     land.NewService(memory.NewLandRepository(store), cfg.Land, rng, clock, pub),
		Market:   market.NewService(memory.NewMarketRepository(store), cfg.Market, clock, pub),
		EventLog: events,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testApp{srv: srv, rng: rng, clock: clock}
}

// call issues a request as 0xalice and decodes the JSON response into out when non-nil
func (a *testApp) call(t *testing.T, method, path string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	req.Header.Set(middleware.HeaderAccount, "0xalice")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_PlantHarvestSellFlow(t *testing.T) {
	app := newTestApp(t)

	var bag domain.SeedBag
	require.Equal(t, http.StatusCreated, app.call(t, http.MethodPost, "/api/v1/seeds/mint", map[string]int{"amount": 20}, &bag))
	require.Equal(t, int64(20), bag.Balance)

	require.Equal(t, http.StatusCreated, app.call(t, http.MethodPost, "/api/v1/land", nil, nil))
	require.Equal(t, http.StatusConflict, app.call(t, http.MethodPost, "/api/v1/land", nil, nil))

	var l domain.PlayerLand
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/land/deposit", map[string]string{"bag_id": bag.ID}, &l))
	assert.Equal(t, int64(20), l.SeedBalance)

	// fruit type, rarity roll, base weight
	app.rng.Push(4, 50, 300)
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/land/plant", map[string]int{"slot": 0, "seeds": 10}, &l))
	assert.Equal(t, int64(10), l.SeedBalance)
	require.NotNil(t, l.Slots[0])
	assert.Equal(t, int64(400), l.Slots[0].Weight)

	app.clock.Advance(14_999 * time.Millisecond)
	assert.Equal(t, http.StatusBadRequest, app.call(t, http.MethodPost, "/api/v1/land/harvest", map[string]int{"slot": 0}, nil))

	app.clock.Advance(time.Millisecond)
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/land/harvest", map[string]int{"slot": 0}, nil))

	var inv struct {
		Fruits []struct {
			DisplayName string `json:"display_name"`
			Rarity      string `json:"rarity"`
		} `json:"fruits"`
	}
	require.Equal(t, http.StatusOK, app.call(t, http.MethodGet, "/api/v1/inventory", nil, &inv))
	require.Len(t, inv.Fruits, 1)
	assert.Equal(t, "Orange", inv.Fruits[0].DisplayName)
	assert.Equal(t, "UNCOMMON", inv.Fruits[0].Rarity)

	var sale struct {
		Bag *domain.SeedBag `json:"bag"`
	}
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/market/sell", map[string]int{"index": 0}, &sale))
	require.NotNil(t, sale.Bag)
	assert.Positive(t, sale.Bag.Balance)

	var bags []domain.SeedBag
	require.Equal(t, http.StatusOK, app.call(t, http.MethodGet, "/api/v1/seeds", nil, &bags))
	require.Len(t, bags, 1)
	assert.Equal(t, sale.Bag.ID, bags[0].ID)

	var logged []map[string]interface{}
	require.Equal(t, http.StatusOK, app.call(t, http.MethodGet, "/api/v1/events?owner=0xalice&type="+domain.EventTypeFruitSold, nil, &logged))
	assert.Len(t, logged, 1)
}

func TestRouter_GameClaimCycle(t *testing.T) {
	app := newTestApp(t)

	var s struct {
		Phase          domain.SessionPhase `json:"phase"`
		SeedsPending   int64               `json:"seeds_pending"`
		SeedsHarvested int64               `json:"seeds_harvested"`
		DropsRemaining int                 `json:"drops_remaining"`
	}
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/start", nil, &s))
	assert.Equal(t, domain.PhasePlaying, s.Phase)

	// nothing pending yet
	assert.Equal(t, http.StatusBadRequest, app.call(t, http.MethodPost, "/api/v1/game/claim", nil, nil))

	// two level-3 fruits merge into a level 4 worth one seed
	app.rng.Push(3, 3)
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/drop", nil, nil))
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/drop", nil, nil))
	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/merge", map[string]int{"i": 0, "j": 1}, &s))
	assert.Equal(t, int64(1), s.SeedsPending)

	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/claim", nil, &s))
	assert.Equal(t, domain.PhaseClaiming, s.Phase)
	for s.DropsRemaining > 0 {
		require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/drop", nil, &s))
	}
	assert.Equal(t, domain.PhaseClaimComplete, s.Phase)
	assert.Equal(t, http.StatusConflict, app.call(t, http.MethodPost, "/api/v1/game/drop", nil, nil))

	require.Equal(t, http.StatusOK, app.call(t, http.MethodPost, "/api/v1/game/harvest", nil, &s))
	assert.Equal(t, int64(1), s.SeedsHarvested)

	var w struct {
		Bag *domain.SeedBag `json:"bag"`
	}
	require.Equal(t, http.StatusCreated, app.call(t, http.MethodPost, "/api/v1/game/withdraw", map[string]int{"amount": 0}, &w))
	assert.Equal(t, int64(1), w.Bag.Balance)
}

func TestRouter_AuthAndIdentity(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(app.srv.URL + "/api/v1/seeds")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, app.srv.URL+"/api/v1/seeds", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing X-Account")

	// event log reads need no account
	req, _ = http.NewRequest(http.MethodGet, app.srv.URL+"/api/v1/events", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
