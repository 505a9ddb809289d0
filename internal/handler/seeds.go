package handler

import (
	"net/http"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/ledger"
)

// MintRequest mints a new bag for the caller
type MintRequest struct {
	Amount int64 `json:"amount" validate:"min=1"`
}

// MergeBagsRequest merges two of the caller's bags
type MergeBagsRequest struct {
	BagA string `json:"bag_a" validate:"required,max=64"`
	BagB string `json:"bag_b" validate:"required,max=64,nefield=BagA"`
}

// BagAmountRequest spends from or adds to a bag
type BagAmountRequest struct {
	BagID  string `json:"bag_id" validate:"required,max=64"`
	Amount int64  `json:"amount" validate:"min=1"`
}

// BagRequest names a single bag
type BagRequest struct {
	BagID string `json:"bag_id" validate:"required,max=64"`
}

// ConsumeResponse reports how many seeds a consumed bag held
type ConsumeResponse struct {
	Message string `json:"message"`
	BagID   string `json:"bag_id"`
	Amount  int64  `json:"amount"`
}

// SeedsHandler serves the seed ledger
type SeedsHandler struct {
	ledger ledger.Service
}

// NewSeedsHandler creates a SeedsHandler
func NewSeedsHandler(svc ledger.Service) *SeedsHandler {
	return &SeedsHandler{ledger: svc}
}

// HandleList lists the caller's bags
func (h *SeedsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bags, err := h.ledger.ListBags(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, "list bags", err)
		return
	}
	if bags == nil {
		bags = []domain.SeedBag{}
	}
	respondJSON(w, http.StatusOK, bags)
}

// HandleMint mints a bag
func (h *SeedsHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req MintRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mint seeds"); err != nil {
		return
	}
	bag, err := h.ledger.Mint(r.Context(), owner, req.Amount)
	if err != nil {
		respondServiceError(w, r, "mint", err)
		return
	}
	respondJSON(w, http.StatusCreated, bag)
}

// HandleMerge merges two bags into a new one
func (h *SeedsHandler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req MergeBagsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Merge bags"); err != nil {
		return
	}
	bag, err := h.ledger.Merge(r.Context(), owner, req.BagA, req.BagB)
	if err != nil {
		respondServiceError(w, r, "merge bags", err)
		return
	}
	respondJSON(w, http.StatusCreated, bag)
}

// HandleSpend debits a bag
func (h *SeedsHandler) HandleSpend(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req BagAmountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spend seeds"); err != nil {
		return
	}
	bag, err := h.ledger.Spend(r.Context(), owner, req.BagID, req.Amount)
	if err != nil {
		respondServiceError(w, r, "spend", err)
		return
	}
	respondJSON(w, http.StatusOK, bag)
}

// HandleAdd credits a bag
func (h *SeedsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req BagAmountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add seeds"); err != nil {
		return
	}
	bag, err := h.ledger.Add(r.Context(), owner, req.BagID, req.Amount)
	if err != nil {
		respondServiceError(w, r, "add", err)
		return
	}
	respondJSON(w, http.StatusOK, bag)
}

// HandleConsume destroys a bag and reports its balance
func (h *SeedsHandler) HandleConsume(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req BagRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Consume bag"); err != nil {
		return
	}
	amount, err := h.ledger.Consume(r.Context(), owner, req.BagID)
	if err != nil {
		respondServiceError(w, r, "consume", err)
		return
	}
	respondJSON(w, http.StatusOK, ConsumeResponse{Message: MsgSeedsConsumed, BagID: req.BagID, Amount: amount})
}
