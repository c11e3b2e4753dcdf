package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	base := errors.New("status 429")
	err := fmt.Errorf("generation: %w", NewUserError("Too many requests. Please try again in a moment.", base))

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "Too many requests. Please try again in a moment.", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "retryable", err: &RetryableError{Err: errors.New("bad batch"), Retryable: true}, want: true},
		{name: "wrapped retryable", err: fmt.Errorf("attempt 1: %w", &RetryableError{Err: errors.New("x"), Retryable: true}), want: true},
		{name: "explicitly not retryable", err: &RetryableError{Err: errors.New("quota"), Retryable: false}, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
