package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(buf).Encode(ErrorResponse{Error: ErrMsgGenericServerError})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

type errorMapping struct {
	target error
	status int
}

// errorMappings is checked in order with errors.Is; the sentinel's own
// message is what the client sees.
var errorMappings = []errorMapping{
	// missing entities
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAccountNotFound, http.StatusNotFound},
	{domain.ErrNotOwner, http.StatusNotFound},

	// state conflicts
	{domain.ErrAlreadyExists, http.StatusConflict},
	{domain.ErrGameOver, http.StatusConflict},
	{domain.ErrClaimComplete, http.StatusConflict},
	{domain.ErrInvalidState, http.StatusConflict},
	{domain.ErrSlotOccupied, http.StatusConflict},

	// precondition violations
	{domain.ErrInsufficientSeeds, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrOverflow, http.StatusBadRequest},
	{domain.ErrNothingToClaim, http.StatusBadRequest},
	{domain.ErrInvalidIndex, http.StatusBadRequest},
	{domain.ErrMismatchedLevels, http.StatusBadRequest},
	{domain.ErrNothingToWithdraw, http.StatusBadRequest},
	{domain.ErrInvalidSlot, http.StatusBadRequest},
	{domain.ErrSlotEmpty, http.StatusBadRequest},
	{domain.ErrNotReady, http.StatusBadRequest},
	{domain.ErrNoEmptySlots, http.StatusBadRequest},
	{domain.ErrNothingToHarvest, http.StatusBadRequest},
	{domain.ErrNotEnoughFruits, http.StatusBadRequest},
	{domain.ErrMaxLevel, http.StatusBadRequest},
	{domain.ErrInvalidFruit, http.StatusBadRequest},
	{domain.ErrInvalidInput, http.StatusBadRequest},
}

// mapServiceError converts a service error into an HTTP status and user-facing message
func mapServiceError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.target.Error()
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "action", action, "error", err)
	} else {
		log.Debug(LogMsgServiceError, "action", action, "error", err, "status", status)
	}
	respondError(w, status, msg)
}
