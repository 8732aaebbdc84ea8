package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("event", "abc123"), ErrNotFound, true},
		{"ValidationFailed wraps ErrValidation", ValidationFailed("title", "title is required"), ErrValidation, true},
		{"Conflict wraps ErrConflict", Conflict("participant", "abc123"), ErrConflict, true},
		{"Forbidden wraps ErrForbidden", Forbidden("only the creator can update this event"), ErrForbidden, true},
		{"Unauthenticated wraps ErrUnauthenticated", Unauthenticated("missing token"), ErrUnauthenticated, true},
		{"Persistence wraps ErrPersistence", Persistence("event row was not updated"), ErrPersistence, true},
		{"NotFound does not match ErrValidation", NotFound("event", "abc123"), ErrValidation, false},
		{"Persistence does not match ErrNotFound", Persistence("dropped write"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "event not found with id abc123", NotFound("event", "abc123").Error())
	assert.Equal(t, "title is required", ValidationFailed("title", "title is required").Error())
	assert.Equal(t, "title", ValidationFailed("title", "title is required").Field)
}

func TestUnwrap(t *testing.T) {
	err := NotFound("event", "abc123")
	assert.Equal(t, ErrNotFound, err.Unwrap())
}
