package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/land"
	"github.com/younglafire/fruitfarm/internal/market"
	"github.com/younglafire/fruitfarm/internal/middleware"
	"github.com/younglafire/fruitfarm/internal/repository"
)

const testOwner = "0xalice"

// newRequest builds a request as the account resolver would hand it on
func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	return req.WithContext(middleware.WithOwner(req.Context(), testOwner))
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func intPtr(i int) *int { return &i }

type mockLedgerService struct{ mock.Mock }

func (m *mockLedgerService) bag(args mock.Arguments) (*domain.SeedBag, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeedBag), args.Error(1)
}

func (m *mockLedgerService) Mint(ctx context.Context, owner string, amount int64) (*domain.SeedBag, error) {
	return m.bag(m.Called(ctx, owner, amount))
}

func (m *mockLedgerService) Merge(ctx context.Context, owner, bagA, bagB string) (*domain.SeedBag, error) {
	return m.bag(m.Called(ctx, owner, bagA, bagB))
}

func (m *mockLedgerService) Spend(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error) {
	return m.bag(m.Called(ctx, owner, bagID, amount))
}

func (m *mockLedgerService) Add(ctx context.Context, owner, bagID string, amount int64) (*domain.SeedBag, error) {
	return m.bag(m.Called(ctx, owner, bagID, amount))
}

func (m *mockLedgerService) Consume(ctx context.Context, owner, bagID string) (int64, error) {
	args := m.Called(ctx, owner, bagID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) GetBag(ctx context.Context, owner, bagID string) (*domain.SeedBag, error) {
	return m.bag(m.Called(ctx, owner, bagID))
}

func (m *mockLedgerService) ListBags(ctx context.Context, owner string) ([]domain.SeedBag, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeedBag), args.Error(1)
}

type mockGameService struct{ mock.Mock }

func (m *mockGameService) session(args mock.Arguments) (*domain.GameSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameSession), args.Error(1)
}

func (m *mockGameService) StartGame(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) GetSession(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) DropFruit(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) MergeFruits(ctx context.Context, owner string, i, j int) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner, i, j))
}

func (m *mockGameService) StartClaim(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) CompleteHarvest(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) TriggerGameOver(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) ResetGame(ctx context.Context, owner string) (*domain.GameSession, error) {
	return m.session(m.Called(ctx, owner))
}

func (m *mockGameService) WithdrawSeeds(ctx context.Context, owner string, amount int64) (*domain.GameSession, *domain.SeedBag, error) {
	args := m.Called(ctx, owner, amount)
	var s *domain.GameSession
	var b *domain.SeedBag
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.GameSession)
	}
	if args.Get(1) != nil {
		b = args.Get(1).(*domain.SeedBag)
	}
	return s, b, args.Error(2)
}

type mockLandService struct{ mock.Mock }

func (m *mockLandService) land(args mock.Arguments) (*domain.PlayerLand, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerLand), args.Error(1)
}

func (m *mockLandService) harvest(args mock.Arguments) (*land.HarvestResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*land.HarvestResult), args.Error(1)
}

func (m *mockLandService) CreateLand(ctx context.Context, owner string) (*domain.PlayerLand, error) {
	return m.land(m.Called(ctx, owner))
}

func (m *mockLandService) GetLand(ctx context.Context, owner string) (*domain.LandView, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandView), args.Error(1)
}

func (m *mockLandService) DepositSeeds(ctx context.Context, owner, bagID string) (*domain.PlayerLand, error) {
	return m.land(m.Called(ctx, owner, bagID))
}

func (m *mockLandService) PlantInSlot(ctx context.Context, owner string, slot int, seeds int64) (*domain.PlayerLand, error) {
	return m.land(m.Called(ctx, owner, slot, seeds))
}

func (m *mockLandService) PlantBatch(ctx context.Context, owner string, seedsPerSlot int64) (*domain.PlayerLand, error) {
	return m.land(m.Called(ctx, owner, seedsPerSlot))
}

func (m *mockLandService) HarvestSlot(ctx context.Context, owner string, slot int) (*land.HarvestResult, error) {
	return m.harvest(m.Called(ctx, owner, slot))
}

func (m *mockLandService) HarvestAll(ctx context.Context, owner string) (*land.HarvestResult, error) {
	return m.harvest(m.Called(ctx, owner))
}

type mockMarketService struct{ mock.Mock }

func (m *mockMarketService) inventory(args mock.Arguments) (*domain.FruitInventory, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FruitInventory), args.Error(1)
}

func (m *mockMarketService) GetInventory(ctx context.Context, owner string) (*domain.FruitInventory, error) {
	return m.inventory(m.Called(ctx, owner))
}

func (m *mockMarketService) MergeFruits(ctx context.Context, owner string, fruitType domain.FruitLevel, repetitions int) (*domain.FruitInventory, error) {
	return m.inventory(m.Called(ctx, owner, fruitType, repetitions))
}

func (m *mockMarketService) SellFruit(ctx context.Context, owner string, index int) (*market.SaleResult, error) {
	args := m.Called(ctx, owner, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.SaleResult), args.Error(1)
}

type mockEventLogService struct{ mock.Mock }

func (m *mockEventLogService) Subscribe(bus event.Bus) { m.Called(bus) }

func (m *mockEventLogService) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventLogEntry), args.Error(1)
}

func (m *mockEventLogService) Export(ctx context.Context, w io.Writer, filter repository.EventLogFilter) (int, error) {
	args := m.Called(ctx, w, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
