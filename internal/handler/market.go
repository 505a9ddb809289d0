package handler

import (
	"net/http"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/market"
)

// MarketMergeRequest merges fruits of one type, ten at a time
type MarketMergeRequest struct {
	FruitType   domain.FruitLevel `json:"fruit_type" validate:"fruitlevel"`
	Repetitions int               `json:"repetitions" validate:"min=1"`
}

// SellRequest sells one inventory record by index
type SellRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// MarketHandler serves the inventory and market
type MarketHandler struct {
	market market.Service
}

// NewMarketHandler creates a MarketHandler
func NewMarketHandler(svc market.Service) *MarketHandler {
	return &MarketHandler{market: svc}
}

// HandleInventory reads the caller's inventory
func (h *MarketHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	inv, err := h.market.GetInventory(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, "get inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, newInventoryResponse(inv))
}

// HandleMerge merges inventory fruit into the next type
func (h *MarketHandler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req MarketMergeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Market merge"); err != nil {
		return
	}
	inv, err := h.market.MergeFruits(r.Context(), owner, req.FruitType, req.Repetitions)
	if err != nil {
		respondServiceError(w, r, "market merge", err)
		return
	}
	respondJSON(w, http.StatusOK, newInventoryResponse(inv))
}

// HandleSell sells one fruit for seeds
func (h *MarketHandler) HandleSell(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell fruit"); err != nil {
		return
	}
	res, err := h.market.SellFruit(r.Context(), owner, *req.Index)
	if err != nil {
		respondServiceError(w, r, "sell", err)
		return
	}
	respondJSON(w, http.StatusOK, newSaleResponse(res))
}
