package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("bill %s not found", "x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("generate: %w", Forbidden("not your tenant"))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
}

func TestIsMatchesOnKind(t *testing.T) {
	err := InvalidState("unit is occupied")
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", err), ErrInvalidState))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause, "save bill")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save bill: connection reset", err.Error())
	assert.Equal(t, "save bill", MessageOf(err))
	assert.Equal(t, "internal error", MessageOf(cause))
}
