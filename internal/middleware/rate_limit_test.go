package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Prune(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.allow("10.0.0.2")

	assert.Equal(t, 1, rl.Prune(3*time.Minute))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))
}
