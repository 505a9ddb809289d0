package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/middleware"
)

// DecodeAndValidateRequest decodes a JSON request body into req and validates it.
// If it returns an error the response has already been written.
//
//	var req SpendRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Spend seeds"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// requireOwner returns the resolved caller. Routes are mounted behind the
// account resolver, so a miss means the router is misconfigured.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgMissingOwner)
		return "", false
	}
	return owner, true
}

// queryInt parses an optional integer query parameter, writing a 400 when malformed
func queryInt(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, name))
		return 0, false
	}
	return n, true
}
