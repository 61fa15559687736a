// ABOUTME: Backoff calculation shared by retrying API clients
// ABOUTME: Exponential growth with a hard ceiling and symmetric jitter
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before retry number attempt. The
// delay doubles per attempt from baseDelay, never exceeds 30 seconds,
// and carries random jitter within 25% either way so concurrent
// retries do not line up.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30 // keeps the shift in range
	}

	backoff := baseDelay << uint(attempt)
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
