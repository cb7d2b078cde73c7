package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagementService_List(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 12; i++ {
		env.shorten(t, ShortenDTO{OriginalURL: "https://example.com/" + string(rune('a'+i)), OwnerID: "u1"})
	}
	env.shorten(t, ShortenDTO{OriginalURL: "https://other.example.com", OwnerID: "u2"})

	page := env.manage.List(repository.ListQuery{OwnerID: "u1", Page: 2})
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, repository.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 2)

	all := env.manage.List(repository.ListQuery{PageSize: 500})
	assert.Equal(t, 13, all.Total)
	assert.Equal(t, repository.MaxPageSize, all.PageSize)
}

func TestManagementService_Detail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com", OwnerID: "u1"})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		require.NoError(t, env.clicks.Append(ctx, models.ClickRecord{
			ID:        fmt.Sprintf("click-%d", i),
			ShortCode: m.ShortCode,
			ClickedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	d, err := env.manage.Detail(ctx, m.ShortCode, "u1")
	require.NoError(t, err)
	assert.Equal(t, m.ShortCode, d.ShortCode)
	assert.Equal(t, "http://sho.rt/"+m.ShortCode, d.ShortURL)
	require.Len(t, d.RecentClicks, RecentClickLimit)
	assert.Equal(t, base.Add(119*time.Minute), d.RecentClicks[0].ClickedAt)
	assert.Equal(t, base.Add(20*time.Minute), d.RecentClicks[RecentClickLimit-1].ClickedAt)

	_, err = env.manage.Detail(ctx, m.ShortCode, "u2")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.manage.Detail(ctx, "ghost", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestManagementService_Update(t *testing.T) {
	t.Run("Partial update", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com", OwnerID: "u1"})

		newURL := "https://changed.example.com"
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		updated, err := env.manage.Update(m.ShortCode, "u1", UpdateDTO{OriginalURL: &newURL, ExpiresAt: &exp})
		require.NoError(t, err)

		assert.Equal(t, newURL, updated.OriginalURL)
		require.NotNil(t, updated.ExpiresAt)
		assert.True(t, exp.Equal(*updated.ExpiresAt))
		assert.True(t, updated.IsActive)
		assert.Equal(t, m.CreatedAt, updated.CreatedAt)
	})

	t.Run("Reactivate", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})
		off, on := false, true

		_, err := env.manage.Update(m.ShortCode, "", UpdateDTO{IsActive: &off})
		require.NoError(t, err)
		_, err = env.resolver.Resolve(m.ShortCode)
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = env.manage.Update(m.ShortCode, "", UpdateDTO{IsActive: &on})
		require.NoError(t, err)
		_, err = env.resolver.Resolve(m.ShortCode)
		assert.NoError(t, err)
	})

	t.Run("Invalid URL leaves mapping untouched", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com"})
		bad := "mailto:someone@example.com"
		off := false

		_, err := env.manage.Update(m.ShortCode, "", UpdateDTO{OriginalURL: &bad, IsActive: &off})
		assert.ErrorIs(t, err, models.ErrValidation)

		got, _ := env.store.Get(m.ShortCode)
		assert.Equal(t, "https://example.com", got.OriginalURL)
		assert.True(t, got.IsActive)
	})

	t.Run("Owner mismatch", func(t *testing.T) {
		env := newTestEnv(t)
		m := env.shorten(t, ShortenDTO{OriginalURL: "https://example.com", OwnerID: "u1"})
		off := false
		_, err := env.manage.Update(m.ShortCode, "u2", UpdateDTO{IsActive: &off})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
