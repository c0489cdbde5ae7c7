package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"go.uber.org/zap"
)

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, &domain.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// handleError converts domain errors to HTTP errors. providerMsg is the
// error text used when Mailgun rejected the call.
func handleError(w http.ResponseWriter, log *zap.Logger, err error, providerMsg string) {
	var providerErr *domain.ProviderError
	var transportErr *domain.TransportError

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "Missing required fields", err.Error())
	case errors.Is(err, domain.ErrNoAPIKey):
		respondError(w, http.StatusNotFound, "No API key found for the domain", "")
	case errors.Is(err, domain.ErrPrimaryDomainNotFound):
		respondError(w, http.StatusNotFound, "Primary domain not found", err.Error())
	case errors.Is(err, domain.ErrDomainNotFound):
		respondError(w, http.StatusNotFound, "Domain not found", err.Error())
	case errors.As(err, &providerErr):
		respondError(w, http.StatusInternalServerError, providerMsg, providerErr.Body)
	case errors.As(err, &transportErr):
		respondError(w, http.StatusInternalServerError, transportErr.Error(), "")
	default:
		log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// formValue returns the trimmed form or query value.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formBool parses checkbox-style booleans. Missing or unrecognized values
// are false.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formValue(r, key)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// formInt64 parses an optional integer field. An empty value yields nil.
func formInt64(r *http.Request, key string) (*int64, error) {
	v := formValue(r, key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
