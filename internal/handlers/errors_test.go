package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kivi-backend/internal/reconcile"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestWriteError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &reconcile.ValidationError{Message: "amount must be positive"})

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "amount must be positive", decodeError(t, rec))
}

func TestWriteError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &reconcile.NotFoundError{Message: "charge not found"})

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "charge not found", decodeError(t, rec))
}

func TestWriteError_Remote(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &reconcile.RemoteError{Op: "store payment", Err: errors.New("connection refused")})

	assert.Equal(t, 500, rec.Code)
	// Storage detail stays server-side.
	assert.Equal(t, "storage operation failed", decodeError(t, rec))
}

func TestWriteError_WrappedValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &reconcile.ValidationError{Message: "unit price cannot be negative"}
	writeError(rec, err)

	assert.Equal(t, 400, rec.Code)
}

func TestWriteError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("boom"))

	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec))
}
