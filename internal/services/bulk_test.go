package services

import (
	"context"
	"testing"

	"tinyurl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete with a missing item", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.shorten(t, ShortenDTO{OriginalURL: "https://a.example.com", CustomAlias: "AAA"})
		b := env.shorten(t, ShortenDTO{OriginalURL: "https://b.example.com", CustomAlias: "BBB"})
		keep := env.shorten(t, ShortenDTO{OriginalURL: "https://c.example.com"})
		env.recorder.RecordClick(ctx, ClickInput{Code: a.ShortCode})
		env.recorder.RecordClick(ctx, ClickInput{Code: b.ShortCode})

		report := env.bulk.Apply(ctx, []string{"AAA", "BBB", "ghost"}, "delete", "")

		assert.False(t, report.Success)
		assert.Equal(t, 2, report.SuccessCount)
		assert.Equal(t, 1, report.FailureCount)
		assert.Equal(t, []string{"ghost"}, report.FailedItems)
		assert.Equal(t, "Bulk operation completed with 1 failures", report.Message)

		for _, code := range []string{"AAA", "BBB"} {
			_, err := env.store.Get(code)
			assert.ErrorIs(t, err, models.ErrNotFound)
			recs, _ := env.clicks.ByCode(ctx, code)
			assert.Empty(t, recs)
		}
		assert.Equal(t, 1, env.store.Len())
		_, err := env.store.Get(keep.ShortCode)
		assert.NoError(t, err)
	})

	t.Run("Deactivate then activate", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.shorten(t, ShortenDTO{OriginalURL: "https://a.example.com"})
		b := env.shorten(t, ShortenDTO{OriginalURL: "https://b.example.com"})
		codes := []string{a.ShortCode, b.ShortCode}

		report := env.bulk.Apply(ctx, codes, "DeActivate", "")
		require.True(t, report.Success)
		assert.Equal(t, "Bulk operation completed", report.Message)
		assert.Empty(t, report.FailedItems)
		for _, c := range codes {
			m, _ := env.store.Get(c)
			assert.False(t, m.IsActive)
		}

		report = env.bulk.Apply(ctx, codes, "activate", "")
		require.True(t, report.Success)
		for _, c := range codes {
			m, _ := env.store.Get(c)
			assert.True(t, m.IsActive)
		}
	})

	t.Run("Unknown operation fails every item", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.shorten(t, ShortenDTO{OriginalURL: "https://a.example.com"})

		report := env.bulk.Apply(ctx, []string{a.ShortCode, "ghost"}, "archive", "")
		assert.False(t, report.Success)
		assert.Equal(t, 0, report.SuccessCount)
		assert.Equal(t, []string{a.ShortCode, "ghost"}, report.FailedItems)

		m, err := env.store.Get(a.ShortCode)
		require.NoError(t, err)
		assert.True(t, m.IsActive)
	})

	t.Run("Owner scoping", func(t *testing.T) {
		env := newTestEnv(t)
		mine := env.shorten(t, ShortenDTO{OriginalURL: "https://a.example.com", OwnerID: "u1"})
		theirs := env.shorten(t, ShortenDTO{OriginalURL: "https://b.example.com", OwnerID: "u2"})

		report := env.bulk.Apply(ctx, []string{mine.ShortCode, theirs.ShortCode}, "delete", "u1")
		assert.Equal(t, 1, report.SuccessCount)
		assert.Equal(t, []string{theirs.ShortCode}, report.FailedItems)
		_, err := env.store.Get(theirs.ShortCode)
		assert.NoError(t, err)
	})

	t.Run("Empty batch", func(t *testing.T) {
		env := newTestEnv(t)
		report := env.bulk.Apply(ctx, nil, "delete", "")
		assert.True(t, report.Success)
		assert.Equal(t, 0, report.SuccessCount)
	})
}
