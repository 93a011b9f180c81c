package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a key once", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		first, err := store.MarkProcessed(ctx, "fee-reminder:2026-06-01", time.Hour)
		require.NoError(t, err)
		assert.True(t, first)

		second, err := store.MarkProcessed(ctx, "fee-reminder:2026-06-01", time.Hour)
		require.NoError(t, err)
		assert.False(t, second)

		processed, err := store.IsProcessed(ctx, "fee-reminder:2026-06-01")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired keys can be re-marked", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "payroll:2026-05", time.Millisecond)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "payroll:2026-05")
		require.NoError(t, err)
		assert.False(t, processed)

		again, err := store.MarkProcessed(ctx, "payroll:2026-05", time.Hour)
		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("unknown key is not processed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}
