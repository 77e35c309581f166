package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelay(t *testing.T) {
	require.Equal(t, 2*time.Second, Delay(1))
	require.Equal(t, 4*time.Second, Delay(2))
	require.Equal(t, 8*time.Second, Delay(3))
	require.Equal(t, 16*time.Second, Delay(4))
	require.Equal(t, 30*time.Second, Delay(5))
	require.Equal(t, 30*time.Second, Delay(6))
	require.Equal(t, 30*time.Second, Delay(100))
}

func TestDelayMonotonic(t *testing.T) {
	prev := time.Duration(0)
	for attempt := 1; attempt <= 10; attempt++ {
		d := Delay(attempt)
		require.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
		require.LessOrEqual(t, d, 30*time.Second)
		prev = d
	}
}
