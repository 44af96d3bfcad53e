package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/apperr"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes a successful creation response (201 Created) with JSON data
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a successful response with no content (204 No Content)
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteErrorMessage writes a JSON error response with a custom message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteBadRequest writes a bad request error (400)
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteUnauthorized writes an unauthorized error (401)
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusUnauthorized, message)
}

// WriteNotFound writes a not found error (404)
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusNotFound, message)
}

// WriteAppError maps an error from the apperr taxonomy to its HTTP response.
//
// Validation errors carry the per-field detail map. Persistence and partial
// failures log the cause server-side and return a generic body so internal
// detail never reaches the client.
func WriteAppError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var (
		authErr     *apperr.AuthenticationError
		validErr    *apperr.ValidationError
		notFoundErr *apperr.NotFoundError
		conflictErr *apperr.ConflictError
		partialErr  *apperr.PartialFailureError
		persistErr  *apperr.PersistenceError
	)

	switch {
	case errors.As(err, &authErr):
		WriteErrorMessage(w, http.StatusUnauthorized, authErr.Reason)
	case errors.As(err, &validErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error:   "validation failed",
			Details: validErr.Fields,
		})
	// Partial and persistence failures wrap the row error that caused them,
	// so they must match before the kinds their cause could satisfy.
	case errors.As(err, &partialErr):
		if log != nil {
			log.WithError(partialErr).WithFields(logrus.Fields{
				"operation": partialErr.Op,
				"applied":   partialErr.Applied,
				"failed":    partialErr.Failed,
			}).Error("multi-row update partially applied")
		}
		WriteErrorMessage(w, http.StatusInternalServerError, "update partially applied")
	case errors.As(err, &persistErr):
		if log != nil {
			log.WithError(persistErr).WithField("operation", persistErr.Op).
				Error("persistence failure")
		}
		WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
	case errors.As(err, &notFoundErr):
		WriteErrorMessage(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		WriteErrorMessage(w, http.StatusConflict, conflictErr.Error())
	default:
		if log != nil {
			log.WithError(err).Error("unhandled error")
		}
		WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
