package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"conflict", ErrRequestNotPending, "request is already accepted or completed"},
		{"unauthorized", ErrGoogleOnlyAccount, "please login with Google"},
		{"bare sentinel", ErrUnauthorized, "authentication required"},
		{"invalid", Invalid("field '%s' must be a date", "dob"), "field 'dob' must be a date"},
		{"not found", NotFound("donor"), "donor not found"},
		{"forbidden", Forbidden("you can only delete your own requests"), "you can only delete your own requests"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound("alert"), ErrNotFound)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", ErrDonorExists), ErrConflict)
	assert.NotErrorIs(t, ErrInvalidToken, ErrConflict)
}
