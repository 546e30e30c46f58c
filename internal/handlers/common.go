// Package handlers provides the HTTP handlers for the wealthfolio API.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "wealthfolio/internal/errors"
)

// respondJSON writes data as a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes an error message as a JSON response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps application error classes onto HTTP statuses.
func respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInputFormat),
		errors.Is(err, apperrors.ErrEmptyWorkbook):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrRemoteFetch),
		errors.Is(err, apperrors.ErrExternalService):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
