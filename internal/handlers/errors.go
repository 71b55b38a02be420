package handlers

import (
	"errors"
	"log"
	"net/http"

	"kivi-backend/internal/reconcile"
	"kivi-backend/pkg/utils"
)

// writeError maps the reconcile error taxonomy onto HTTP statuses. Storage
// failures are logged server-side and surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *reconcile.ValidationError
	var notFoundErr *reconcile.NotFoundError
	var remoteErr *reconcile.RemoteError

	switch {
	case errors.As(err, &validationErr):
		utils.Error(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		utils.Error(w, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &remoteErr):
		log.Printf("[HTTP] %v", remoteErr)
		utils.Error(w, http.StatusInternalServerError, "storage operation failed")
	default:
		log.Printf("[HTTP] %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
