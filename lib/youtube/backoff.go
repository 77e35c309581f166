package youtube

import "time"

const backoffCap = 30 * time.Second

// Delay returns the exponential backoff delay before retrying the given
// 1-based attempt: min(2^attempt, 30) seconds.
func Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt >= 5 {
		return backoffCap
	}
	return time.Duration(1<<uint(attempt)) * time.Second
}
