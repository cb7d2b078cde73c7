package services

import (
	"fmt"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
)

// Resolver turns a code or alias into its redirect target.
type Resolver struct {
	store *repository.Store
	now   func() time.Time
}

func NewResolver(store *repository.Store) *Resolver {
	return &Resolver{
		store: store,
		now:   time.Now,
	}
}

// Resolve counts one click and returns the original URL. An expired mapping
// is deactivated on the spot and reported with models.ErrExpired.
func (r *Resolver) Resolve(code string) (string, error) {
	now := r.now()
	m, err := r.store.Mutate(code, "", func(m *models.URLMapping) error {
		if !m.IsActive {
			return fmt.Errorf("%w: %s", models.ErrNotFound, m.ShortCode)
		}
		if m.Expired(now) {
			m.IsActive = false
			return fmt.Errorf("%w: %s", models.ErrExpired, m.ShortCode)
		}
		m.ClickCount++
		return nil
	})
	if err != nil {
		return "", err
	}
	return m.OriginalURL, nil
}
