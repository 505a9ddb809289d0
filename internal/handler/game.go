package handler

import (
	"context"
	"net/http"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/game"
)

// BoardMergeRequest merges two board fruits by index
type BoardMergeRequest struct {
	I *int `json:"i" validate:"required,min=0"`
	J *int `json:"j" validate:"required,min=0"`
}

// WithdrawRequest moves harvested seeds into a new bag; zero withdraws everything
type WithdrawRequest struct {
	Amount int64 `json:"amount" validate:"min=0"`
}

// GameHandler serves the merge game session
type GameHandler struct {
	game game.Service
}

// NewGameHandler creates a GameHandler
func NewGameHandler(svc game.Service) *GameHandler {
	return &GameHandler{game: svc}
}

type sessionOp func(ctx context.Context, owner string) (*domain.GameSession, error)

// transition adapts a no-argument session operation into a handler
func (h *GameHandler) transition(action string, op sessionOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r)
		if !ok {
			return
		}
		session, err := op(r.Context(), owner)
		if err != nil {
			respondServiceError(w, r, action, err)
			return
		}
		respondJSON(w, http.StatusOK, newSessionResponse(session))
	}
}

// HandleStart creates the caller's session, or returns the existing one
func (h *GameHandler) HandleStart() http.HandlerFunc {
	return h.transition("start game", h.game.StartGame)
}

// HandleGet reads the caller's session
func (h *GameHandler) HandleGet() http.HandlerFunc {
	return h.transition("get game", h.game.GetSession)
}

// HandleDrop drops a fruit onto the board
func (h *GameHandler) HandleDrop() http.HandlerFunc { return h.transition("drop", h.game.DropFruit) }

// HandleClaim starts the seed claim countdown
func (h *GameHandler) HandleClaim() http.HandlerFunc {
	return h.transition("start claim", h.game.StartClaim)
}

// HandleHarvest moves pending seeds to harvested once the claim is complete
func (h *GameHandler) HandleHarvest() http.HandlerFunc {
	return h.transition("complete harvest", h.game.CompleteHarvest)
}

// HandleOver ends the game, forfeiting pending seeds
func (h *GameHandler) HandleOver() http.HandlerFunc {
	return h.transition("game over", h.game.TriggerGameOver)
}

// HandleReset clears the board for a new game
func (h *GameHandler) HandleReset() http.HandlerFunc { return h.transition("reset", h.game.ResetGame) }

// HandleMerge merges two same-level fruits on the board
func (h *GameHandler) HandleMerge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r)
		if !ok {
			return
		}
		var req BoardMergeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Merge fruits"); err != nil {
			return
		}
		session, err := h.game.MergeFruits(r.Context(), owner, *req.I, *req.J)
		if err != nil {
			respondServiceError(w, r, "merge fruits", err)
			return
		}
		respondJSON(w, http.StatusOK, newSessionResponse(session))
	}
}

// HandleWithdraw mints harvested seeds into a new bag
func (h *GameHandler) HandleWithdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := requireOwner(w, r)
		if !ok {
			return
		}
		var req WithdrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw seeds"); err != nil {
			return
		}
		session, bag, err := h.game.WithdrawSeeds(r.Context(), owner, req.Amount)
		if err != nil {
			respondServiceError(w, r, "withdraw", err)
			return
		}
		respondJSON(w, http.StatusCreated, WithdrawResponse{Session: newSessionResponse(session), Bag: bag})
	}
}
