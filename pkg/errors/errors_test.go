package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: post not found", NotFound("post not found").Error())

	wrapped := Wrap(stderrors.New("boom"), ErrCodeInternalError, "failed to load post")
	assert.Equal(t, "INTERNAL_ERROR: failed to load post (boom)", wrapped.Error())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Conflict", err: Conflict("duplicate"), want: ErrCodeConflict},
		{name: "Wrapped by fmt", err: fmt.Errorf("context: %w", Forbidden("nope")), want: ErrCodeForbidden},
		{name: "Plain error", err: stderrors.New("plain"), want: ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.True(t, Is(InvalidState("unread"), ErrCodeInvalidState))
	assert.False(t, Is(nil, ErrCodeNotFound))
	assert.False(t, Is(NotFound("x"), ErrCodeConflict))
}

func TestWrap_Unwrap(t *testing.T) {
	cause := stderrors.New("driver failure")
	err := Internal(cause, "failed to create like")
	assert.True(t, stderrors.Is(err, cause))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "post not found", MessageOf(fmt.Errorf("load: %w", NotFound("post not found"))))
	assert.Equal(t, "plain", MessageOf(stderrors.New("plain")))
}
