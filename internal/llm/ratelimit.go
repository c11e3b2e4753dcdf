package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// newRateLimiter allows requestsPerMinute calls per minute with a burst of one
// minute's worth. A negative rate disables limiting.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute < 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if requestsPerMinute == 0 {
		requestsPerMinute = DefaultRateLimit
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// wait blocks until the limiter admits one request or ctx ends.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}
	return nil
}
