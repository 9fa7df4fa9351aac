package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	t.Run("matches code on direct error", func(t *testing.T) {
		err := New(CodeNotFound, "task not found")
		assert.True(t, Is(err, CodeNotFound))
		assert.False(t, Is(err, CodeBadRequest))
	})

	t.Run("matches code through wrapping", func(t *testing.T) {
		inner := New(CodeValidation, "description required")
		wrapped := fmt.Errorf("decode request: %w", inner)
		assert.True(t, Is(wrapped, CodeValidation))
	})

	t.Run("uncoded error matches nothing", func(t *testing.T) {
		assert.False(t, Is(errors.New("plain"), CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnauthorized, CodeOf(New(CodeUnauthorized, "no token")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("unexpected")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "pattern store unavailable", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pattern store unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
