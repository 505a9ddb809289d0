package handler

import (
	"net/http"

	"github.com/younglafire/fruitfarm/internal/land"
)

// DepositRequest moves a whole bag into the land balance
type DepositRequest struct {
	BagID string `json:"bag_id" validate:"required,max=64"`
}

// PlantRequest plants one slot
type PlantRequest struct {
	Slot  *int  `json:"slot" validate:"required,min=0"`
	Seeds int64 `json:"seeds" validate:"min=1"`
}

// PlantBatchRequest plants every empty slot with the same seed count
type PlantBatchRequest struct {
	SeedsPerSlot int64 `json:"seeds_per_slot" validate:"min=1"`
}

// HarvestSlotRequest harvests one slot
type HarvestSlotRequest struct {
	Slot *int `json:"slot" validate:"required,min=0"`
}

// LandHandler serves land planting
type LandHandler struct {
	land land.Service
}

// NewLandHandler creates a LandHandler
func NewLandHandler(svc land.Service) *LandHandler {
	return &LandHandler{land: svc}
}

// HandleCreate creates the caller's land
func (h *LandHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	l, err := h.land.CreateLand(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, "create land", err)
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

// HandleGet reads the caller's land with slot readiness
func (h *LandHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	view, err := h.land.GetLand(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, "get land", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleDeposit consumes a bag into the land balance
func (h *LandHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req DepositRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deposit seeds"); err != nil {
		return
	}
	l, err := h.land.DepositSeeds(r.Context(), owner, req.BagID)
	if err != nil {
		respondServiceError(w, r, "deposit", err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// HandlePlant plants seeds in one slot
func (h *LandHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
		return
	}
	l, err := h.land.PlantInSlot(r.Context(), owner, *req.Slot, req.Seeds)
	if err != nil {
		respondServiceError(w, r, "plant", err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// HandlePlantBatch plants every empty slot
func (h *LandHandler) HandlePlantBatch(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req PlantBatchRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant batch"); err != nil {
		return
	}
	l, err := h.land.PlantBatch(r.Context(), owner, req.SeedsPerSlot)
	if err != nil {
		respondServiceError(w, r, "plant batch", err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// HandleHarvest harvests one ready slot into the inventory
func (h *LandHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req HarvestSlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}
	res, err := h.land.HarvestSlot(r.Context(), owner, *req.Slot)
	if err != nil {
		respondServiceError(w, r, "harvest", err)
		return
	}
	respondJSON(w, http.StatusOK, newHarvestResponse(res))
}

// HandleHarvestAll harvests every ready slot
func (h *LandHandler) HandleHarvestAll(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	res, err := h.land.HarvestAll(r.Context(), owner)
	if err != nil {
		respondServiceError(w, r, "harvest all", err)
		return
	}
	respondJSON(w, http.StatusOK, newHarvestResponse(res))
}
