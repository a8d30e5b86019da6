package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists a jti until it expires", func(t *testing.T) {
		blacklist := NewMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

		blocked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = blacklist.IsBlacklisted(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("ignores entries with a non-positive ttl", func(t *testing.T) {
		blacklist := NewMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", 0))

		blocked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("expires entries", func(t *testing.T) {
		blacklist := NewMemoryTokenBlacklist()

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-3", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		blocked, err := blacklist.IsBlacklisted(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, blocked)
	})
}
