package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThrough(t *testing.T) {
	err := NewValidationError("address is required")
	domainErr := ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "address is required", domainErr.Message)
}

func TestToDomainError_WrappedDomainError(t *testing.T) {
	inner := NewNotFound("Issue not found")
	wrapped := errors.Join(inner, errors.New("context"))
	domainErr := ToDomainError(wrapped)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainError_NoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainError_OpaqueInternal(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	domainErr := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message, "store detail must not leak")
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainError_Nil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}

func TestDomainError_ErrorString(t *testing.T) {
	err := NewInternalError(errors.New("boom"))
	assert.Equal(t, "internal server error: boom", err.Error())
}
