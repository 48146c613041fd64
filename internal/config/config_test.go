package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnavy/pos/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		type Config struct {
			Log   config.Log
			HTTP  config.HTTP
			Relay config.Relay
			Event config.Event
		}

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
		assert.Equal(t, []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://shop-navy-beta.vercel.app",
		}, cfg.HTTP.AllowedOrigins)
		assert.False(t, cfg.Relay.Enabled)
		assert.Equal(t, time.Second, cfg.Relay.Interval)
		assert.Equal(t, 5, cfg.Event.LowStockThreshold)
	})

	t.Run("Should read environment variables", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("REDIS_PRODUCT_TTL", "30s")
		t.Setenv("RELAY_LOW_STOCK_THRESHOLD", "2")

		type Config struct {
			Log   config.Log
			HTTP  config.HTTP
			Redis config.Redis
			Event config.Event
		}

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 30*time.Second, cfg.Redis.ProductTTL)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Event.LowStockThreshold)
	})

	t.Run("Should fail on unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "XML")

		type Config struct {
			Log config.Log
		}

		_, err := config.New[Config]()
		assert.Error(t, err)
	})
}
