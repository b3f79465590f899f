package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorUnwrapping(t *testing.T) {
	err := NewNotFoundError("table \"users\"")
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsValidationError(err))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, IsNotFound(wrapped))
}

func TestValidationErrorIncludesField(t *testing.T) {
	err := NewValidationError("table", "sequence fix only applicable to PostgreSQL")
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "field: table")
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupportedError("sequences require the PostgreSQL backend")
	assert.True(t, IsUnsupported(err))
	assert.False(t, IsNotFound(err))
}
