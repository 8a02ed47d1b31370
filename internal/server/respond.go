package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/week"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// writeError maps the error taxonomy to status codes. An empty result set
// is never routed through here; only real failures are.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrUnreadableInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrParse):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, week.ErrNoCandidates):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
