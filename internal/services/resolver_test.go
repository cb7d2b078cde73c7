package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"tinyurl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("Counts one click", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})

		target, err := env.resolver.Resolve(m.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", target)

		stats, err := env.shortener.Stats(m.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.ClickCount)
	})

	t.Run("Unknown code", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.resolver.Resolve("zzzzzz")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Inactive mapping is not resolvable", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})
		off := false
		_, err := env.manage.Update(m.ShortCode, "", UpdateDTO{IsActive: &off})
		require.NoError(t, err)

		_, err = env.resolver.Resolve(m.ShortCode)
		assert.ErrorIs(t, err, models.ErrNotFound)

		stats, _ := env.shortener.Stats(m.ShortCode)
		assert.Equal(t, int64(0), stats.ClickCount)
	})

	t.Run("Expired mapping is deactivated lazily", func(t *testing.T) {
		env := newTestEnv(t)
		past := time.Now().Add(-time.Hour)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com", ExpiresAt: &past})

		before, err := env.shortener.Stats(m.ShortCode)
		require.NoError(t, err)
		assert.True(t, before.IsActive)

		_, err = env.resolver.Resolve(m.ShortCode)
		assert.ErrorIs(t, err, models.ErrExpired)
		assert.True(t, models.IsNotFound(err))

		after, err := env.shortener.Stats(m.ShortCode)
		require.NoError(t, err)
		assert.False(t, after.IsActive)
		assert.Equal(t, int64(0), after.ClickCount)

		// Once flipped it stays flipped and reads as plain absence.
		_, err = env.resolver.Resolve(m.ShortCode)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Future expiry resolves", func(t *testing.T) {
		env := newTestEnv(t)
		future := time.Now().Add(time.Hour)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com", ExpiresAt: &future})

		_, err := env.resolver.Resolve(m.ShortCode)
		assert.NoError(t, err)
	})

	t.Run("Concurrent resolves lose no updates", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})

		const k = 200
		var wg sync.WaitGroup
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.resolver.Resolve(m.ShortCode)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stats, err := env.shortener.Stats(m.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, int64(k), stats.ClickCount)
	})

	t.Run("Delete racing resolves", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := env.resolver.Resolve(m.ShortCode); err != nil {
					assert.ErrorIs(t, err, models.ErrNotFound)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, env.shortener.Delete(context.Background(), m.ShortCode, ""))
		}()
		wg.Wait()

		_, err := env.resolver.Resolve(m.ShortCode)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
