package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsConflict(Conflict("duplicate")))
	assert.True(t, IsValidation(Validation([]string{"email is required"})))
	assert.True(t, IsStoreUnavailable(New(ErrCodeStoreUnavailable, "down")))

	plain := errors.New("plain")
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsConflict(plain))
	assert.False(t, IsValidation(plain))
	assert.False(t, IsStoreUnavailable(plain))
}

func TestValidationDetails(t *testing.T) {
	err := Validation([]string{"email is required", "phone is required"})
	assert.Equal(t, []string{"email is required", "phone is required"}, ValidationDetails(err))

	assert.Nil(t, ValidationDetails(NotFound("missing")))
	assert.Nil(t, ValidationDetails(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, "mongo insert failed", cause)

	assert.True(t, IsStoreUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STORE_UNAVAILABLE")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := Validation([]string{"a", "b"})
	assert.Contains(t, err.Error(), "a; b")
}
