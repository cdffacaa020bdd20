package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/ai"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON body with the given status
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service-layer errors to HTTP statuses. Unmapped
// errors become a logged 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve validation.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrNotClassroomOwner),
		errors.Is(err, service.ErrNotWordSetOwner),
		errors.Is(err, service.ErrNotSceneOwner),
		errors.Is(err, service.ErrNotSessionOwner):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrClassroomNotFound),
		errors.Is(err, service.ErrWordSetNotFound),
		errors.Is(err, service.ErrSceneNotFound),
		errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrWordNotInSession):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrEmptyWordSet),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, service.ErrUsernameRejected),
		errors.Is(err, service.ErrWordRejected),
		errors.Is(err, service.ErrWordNotInSet),
		errors.Is(err, game.ErrInvalidOperation),
		errors.Is(err, game.ErrInvalidTargetWord),
		errors.Is(err, ai.ErrBadPrompt):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, ai.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, err.Error())

	case errors.Is(err, ai.ErrUnauthorized),
		errors.Is(err, ai.ErrUpstream),
		errors.Is(err, ai.ErrInvalidReply):
		respondError(w, http.StatusBadGateway, err.Error())

	default:
		log.Error().Err(err).Msg("unhandled service error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON parses a JSON request body into dst
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathID parses a numeric URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
