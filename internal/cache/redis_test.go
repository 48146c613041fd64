package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/internal/cache"
	"github.com/shopnavy/pos/internal/config"
	"github.com/shopnavy/pos/internal/model"
)

func TestRedisProductListCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := cache.NewRedisClient(ctx, config.Redis{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisProductListCache(client, time.Minute)

	listing := []model.ProductListing{
		model.NewProductListing(model.Product{ID: 1, Code: "A1", Name: "Tea", CostPrice: 10, SellPrice: 20, GSTPercent: 5, Stock: 10}),
	}

	t.Run("Should miss when empty", func(t *testing.T) {
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should return what was set", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, listing))

		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, listing, got)
		assert.Equal(t, 100.0, got[0].ProfitLossTotal)
	})

	t.Run("Should expire after ttl", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, listing))
		mr.FastForward(2 * time.Minute)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should miss after invalidate", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, listing))
		require.NoError(t, c.Invalidate(ctx))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should keep an empty catalog distinct from a miss", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, []model.ProductListing{}))

		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.NewRedisClient(context.Background(), config.Redis{Addr: addr})
	assert.Error(t, err)
}
