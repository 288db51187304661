package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/use-this-search/clustering-platform/internal/apperr"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeAppError maps an error kind to its HTTP status and writes the error
// with its structured payload. No kind is silently converted.
func writeAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	message := "internal error"
	var ae *apperr.Error
	if errors.As(err, &ae) && kind != apperr.Internal {
		message = ae.Message
	}

	body := map[string]any{
		"error": message,
		"kind":  string(kind),
	}
	if details := apperr.DetailsOf(err); len(details) > 0 {
		body["details"] = details
	}
	writeJSON(w, statusOf(kind), body)
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.TooFewKeywords, apperr.TooManyKeywords, apperr.UnsupportedFormat:
		return http.StatusBadRequest
	case apperr.NotEligible:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.QuotaExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
