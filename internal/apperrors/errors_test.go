package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrorsMatchKindAndCode(t *testing.T) {
	wrapped := fmt.Errorf("accept: %w", ErrInvitationNotPending)

	assert.True(t, errors.Is(wrapped, ErrInvitationNotPending))
	assert.True(t, errors.Is(wrapped, ErrDuplicate))
	assert.False(t, errors.Is(wrapped, ErrInvalidToken))
	assert.Equal(t, CodeInvitationNotPending, CodeOf(wrapped))
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))
}

func TestWithMessageKeepsIdentity(t *testing.T) {
	err := ErrAccessDenied.WithMessage("Only the workspace owner can remove members")

	assert.True(t, errors.Is(err, ErrAccessDenied))
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "Only the workspace owner can remove members", MessageOf(err))
	assert.Equal(t, "Access denied", ErrAccessDenied.Message, "predefined error must not be mutated")
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"workspace not found", ErrWorkspaceNotFound, http.StatusNotFound},
		{"forbidden", ErrAccessDenied, http.StatusForbidden},
		{"invite required", ErrInviteRequired, http.StatusForbidden},
		{"validation", NewValidationFailedError("name is required"), http.StatusBadRequest},
		{"invalid role", ErrInvalidRole, http.StatusBadRequest},
		{"already member", ErrAlreadyMember, http.StatusConflict},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"internal app error", NewAppError(500, "failed to query", errors.New("conn reset")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestInternalErrorsDoNotLeakCause(t *testing.T) {
	err := NewAppError(500, "failed to save workspace", errors.New("pq: password authentication failed"))

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "Internal server error", MessageOf(err))
	assert.Contains(t, err.Error(), "password authentication failed")
}
