package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("relation not found"), KindNotFound},
		{"wrapped conflict", fmt.Errorf("request: %w", Conflict("duplicate")), KindConflict},
		{"foreign error", errors.New("boom"), KindInternal},
		{"invalid state", InvalidState("not pending"), KindInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWithCauseKeepsSentinelIdentity(t *testing.T) {
	sentinel := Conflict("active relation already exists")
	cause := errors.New("unique violation")

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unique violation")
}

func TestAsWrapsForeignErrors(t *testing.T) {
	err := As(errors.New("db down"))
	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, "internal error", err.Message)
}
