package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/domain"
)

func testSession() *domain.GameSession {
	return &domain.GameSession{
		ID:           "s1",
		Owner:        testOwner,
		Score:        40,
		SeedsPending: 1,
		Board:        []domain.BoardFruit{{Level: domain.FruitStrawberry}, {Level: domain.FruitOrange}},
		ClaimState:   domain.ClaimStateNone,
	}
}

func TestGameHandler_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		handler func(*GameHandler) http.HandlerFunc
	}{
		{"StartGame", http.MethodPost, (*GameHandler).HandleStart},
		{"GetSession", http.MethodGet, (*GameHandler).HandleGet},
		{"DropFruit", http.MethodPost, (*GameHandler).HandleDrop},
		{"StartClaim", http.MethodPost, (*GameHandler).HandleClaim},
		{"CompleteHarvest", http.MethodPost, (*GameHandler).HandleHarvest},
		{"TriggerGameOver", http.MethodPost, (*GameHandler).HandleOver},
		{"ResetGame", http.MethodPost, (*GameHandler).HandleReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGameService{}
			svc.On(tt.name, mock.Anything, testOwner).Return(testSession(), nil)

			rec := httptest.NewRecorder()
			tt.handler(NewGameHandler(svc)).ServeHTTP(rec, newRequest(t, tt.method, "/api/v1/game", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeBody[SessionResponse](t, rec)
			assert.Equal(t, domain.PhasePlaying, resp.Phase)
			require.Len(t, resp.Board, 2)
			assert.Equal(t, "Strawberry", resp.Board[0].DisplayName)
			assert.Equal(t, 1, resp.Board[1].Index)
			svc.AssertExpectations(t)
		})
	}
}

func TestGameHandler_StateErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"claim complete blocks drop", domain.ErrClaimComplete, http.StatusConflict},
		{"game over", domain.ErrGameOver, http.StatusConflict},
		{"no session", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGameService{}
			svc.On("DropFruit", mock.Anything, testOwner).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewGameHandler(svc).HandleDrop().ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/game/drop", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.err.Error(), decodeBody[ErrorResponse](t, rec).Error)
		})
	}
}

func TestGameHandler_Merge(t *testing.T) {
	t.Run("passes indexes through", func(t *testing.T) {
		svc := &mockGameService{}
		svc.On("MergeFruits", mock.Anything, testOwner, 0, 3).Return(testSession(), nil)

		rec := httptest.NewRecorder()
		NewGameHandler(svc).HandleMerge().ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/game/merge",
			BoardMergeRequest{I: intPtr(0), J: intPtr(3)}))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing index", func(t *testing.T) {
		svc := &mockGameService{}
		rec := httptest.NewRecorder()
		NewGameHandler(svc).HandleMerge().ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/game/merge",
			map[string]int{"i": 0}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[ValidationErrorResponse](t, rec).Fields, "j")
		svc.AssertNotCalled(t, "MergeFruits")
	})

	t.Run("mismatched levels", func(t *testing.T) {
		svc := &mockGameService{}
		svc.On("MergeFruits", mock.Anything, testOwner, 0, 1).Return(nil, domain.ErrMismatchedLevels)

		rec := httptest.NewRecorder()
		NewGameHandler(svc).HandleMerge().ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/game/merge",
			BoardMergeRequest{I: intPtr(0), J: intPtr(1)}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), domain.ErrMsgMismatchedLevels)
	})
}

func TestGameHandler_Withdraw(t *testing.T) {
	svc := &mockGameService{}
	svc.On("WithdrawSeeds", mock.Anything, testOwner, int64(0)).
		Return(testSession(), &domain.SeedBag{ID: "bag-w", Owner: testOwner, Balance: 12}, nil)

	rec := httptest.NewRecorder()
	NewGameHandler(svc).HandleWithdraw().ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/game/withdraw",
		WithdrawRequest{}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[WithdrawResponse](t, rec)
	assert.Equal(t, int64(12), resp.Bag.Balance)
	assert.Equal(t, "s1", resp.Session.ID)
}
