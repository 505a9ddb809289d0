package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/land"
)

func TestLandHandler_CreateConflict(t *testing.T) {
	svc := &mockLandService{}
	svc.On("CreateLand", mock.Anything, testOwner).Return(nil, domain.ErrAlreadyExists)

	rec := httptest.NewRecorder()
	NewLandHandler(svc).HandleCreate(rec, newRequest(t, http.MethodPost, "/api/v1/land", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLandHandler_Plant(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mockLandService)
		expectedStatus int
	}{
		{
			name: "success",
			body: PlantRequest{Slot: intPtr(0), Seeds: 10},
			setupMock: func(m *mockLandService) {
				m.On("PlantInSlot", mock.Anything, testOwner, 0, int64(10)).
					Return(&domain.PlayerLand{ID: "l1", SeedBalance: 10, Slots: make([]*domain.PlantedFruit, 4)}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing slot",
			body:           map[string]int{"seeds": 10},
			setupMock:      func(m *mockLandService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "occupied",
			body: PlantRequest{Slot: intPtr(2), Seeds: 1},
			setupMock: func(m *mockLandService) {
				m.On("PlantInSlot", mock.Anything, testOwner, 2, int64(1)).Return(nil, domain.ErrSlotOccupied)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "cannot afford",
			body: PlantRequest{Slot: intPtr(1), Seeds: 99},
			setupMock: func(m *mockLandService) {
				m.On("PlantInSlot", mock.Anything, testOwner, 1, int64(99)).Return(nil, domain.ErrInsufficientSeeds)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockLandService{}
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			NewLandHandler(svc).HandlePlant(rec, newRequest(t, http.MethodPost, "/api/v1/land/plant", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestLandHandler_Harvest(t *testing.T) {
	svc := &mockLandService{}
	svc.On("HarvestSlot", mock.Anything, testOwner, 0).Return(&land.HarvestResult{
		Land: &domain.PlayerLand{ID: "l1", Slots: make([]*domain.PlantedFruit, 4)},
		Harvested: []domain.HarvestedFruit{
			{FruitType: domain.FruitGrape, Rarity: domain.RarityUncommon, Weight: 400},
		},
	}, nil)
	svc.On("HarvestAll", mock.Anything, testOwner).Return(nil, domain.ErrNothingToHarvest)
	h := NewLandHandler(svc)

	rec := httptest.NewRecorder()
	h.HandleHarvest(rec, newRequest(t, http.MethodPost, "/api/v1/land/harvest", HarvestSlotRequest{Slot: intPtr(0)}))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[HarvestResponse](t, rec)
	require.Len(t, resp.Harvested, 1)
	assert.Equal(t, "Grape", resp.Harvested[0].DisplayName)
	assert.Equal(t, "UNCOMMON", resp.Harvested[0].Rarity)

	rec = httptest.NewRecorder()
	h.HandleHarvestAll(rec, newRequest(t, http.MethodPost, "/api/v1/land/harvest-all", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrMsgNothingToHarvest)
}

func TestLandHandler_DepositAndBatch(t *testing.T) {
	svc := &mockLandService{}
	svc.On("DepositSeeds", mock.Anything, testOwner, "bag-1").Return(&domain.PlayerLand{SeedBalance: 20}, nil)
	svc.On("PlantBatch", mock.Anything, testOwner, int64(5)).Return(nil, domain.ErrNoEmptySlots)
	h := NewLandHandler(svc)

	rec := httptest.NewRecorder()
	h.HandleDeposit(rec, newRequest(t, http.MethodPost, "/api/v1/land/deposit", DepositRequest{BagID: "bag-1"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"seed_balance":20`)

	rec = httptest.NewRecorder()
	h.HandlePlantBatch(rec, newRequest(t, http.MethodPost, "/api/v1/land/plant-batch", PlantBatchRequest{SeedsPerSlot: 5}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
