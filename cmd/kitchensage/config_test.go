package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/kitchensage"
	main "github.com/fwojciec/kitchensage/cmd/kitchensage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty config", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(t.TempDir() + "/nope.yaml")

		require.NoError(t, err)
		assert.Equal(t, &main.Config{}, cfg)
	})

	t.Run("reads all keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "config.yaml", `db: /tmp/recipes.db
concurrency: 4
timeout: 30s
rate_limit: 0.5
rate_burst: 3
verbose: true
model: gemini-2.5-pro
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, &main.Config{
			DB:          "/tmp/recipes.db",
			Concurrency: 4,
			Timeout:     30 * time.Second,
			RateLimit:   0.5,
			RateBurst:   3,
			Verbose:     true,
			Model:       "gemini-2.5-pro",
		}, cfg)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "config.yaml", "db: [unterminated\n")

		_, err := main.LoadConfig(path)

		assert.Equal(t, kitchensage.EINVALID, kitchensage.ErrorCode(err))
	})

	t.Run("rejects negative concurrency", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "config.yaml", "concurrency: -2\n")

		_, err := main.LoadConfig(path)

		assert.Equal(t, kitchensage.EINVALID, kitchensage.ErrorCode(err))
	})

	t.Run("rejects negative rate burst", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "config.yaml", "rate_burst: -1\n")

		_, err := main.LoadConfig(path)

		assert.Equal(t, kitchensage.EINVALID, kitchensage.ErrorCode(err))
	})
}

func TestConfig_RateLimiter(t *testing.T) {
	t.Parallel()

	t.Run("unset rate limit throttles repeat requests to a site", func(t *testing.T) {
		t.Parallel()

		limiter := (&main.Config{}).RateLimiter()
		require.NoError(t, limiter.Wait(context.Background(), "www.seriouseats.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, limiter.Wait(ctx, "www.seriouseats.com"))
	})

	t.Run("burst allows back-to-back requests", func(t *testing.T) {
		t.Parallel()

		limiter := (&main.Config{RateBurst: 2}).RateLimiter()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.NoError(t, limiter.Wait(ctx, "www.seriouseats.com"))
		require.NoError(t, limiter.Wait(ctx, "www.seriouseats.com"))
	})

	t.Run("negative rate limit disables throttling", func(t *testing.T) {
		t.Parallel()

		limiter := (&main.Config{RateLimit: -1}).RateLimiter()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		for range 5 {
			require.NoError(t, limiter.Wait(ctx, "www.seriouseats.com"))
		}
	})
}
