package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNotFound(t *testing.T) {
	code, msg := Status(NotFound("Project", "abc-123"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Project not found with id: abc-123", msg)
}

func TestStatusDuplicate(t *testing.T) {
	code, msg := Status(Duplicate("Technology with name '%s' already exists", "Go"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Technology with name 'Go' already exists", msg)
}

func TestStatusValidation(t *testing.T) {
	code, msg := Status(Validation("Name is required"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name is required", msg)
}

func TestStatusStoreHidesDetail(t *testing.T) {
	code, msg := Status(Store(errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Database error", msg)
}

func TestStatusWrappedStoreError(t *testing.T) {
	wrapped := fmt.Errorf("listing projects: %w", Store(errors.New("boom")))
	code, msg := Status(wrapped)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Database error", msg)
}

func TestStatusInternal(t *testing.T) {
	code, msg := Status(Internal("invalid project id read from store: %v", "x"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, msg, "invalid project id")
}

func TestStatusUnknownError(t *testing.T) {
	code, msg := Status(errors.New("anything"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", msg)
}

func TestStoreNil(t *testing.T) {
	assert.NoError(t, Store(nil))
}

func TestStoreUnwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, Store(cause), cause)
}
