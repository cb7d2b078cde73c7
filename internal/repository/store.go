package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tinyurl/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CodeGenerator issues a code that the supplied predicate does not reject.
type CodeGenerator interface {
	Generate(taken func(code string) bool) (string, error)
}

// CreateParams carries an already validated shorten request.
type CreateParams struct {
	OriginalURL string
	CustomAlias string
	OwnerID     string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// ListQuery selects one page of mappings, newest first.
type ListQuery struct {
	OwnerID  string
	Page     int
	PageSize int
}

func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Store is the authoritative in-memory set of mappings. Every read-then-write
// on a mapping runs under mu; click records live in a separate ClickLog that
// Delete cascades into while still holding mu.
type Store struct {
	mu      sync.RWMutex
	byCode  map[string]*models.URLMapping
	retired map[string]struct{}
	nextID  uint64
	clicks  ClickLog
}

// NewStore builds an empty store. A nil clicks falls back to a MemoryClickLog.
func NewStore(clicks ClickLog) *Store {
	if clicks == nil {
		clicks = NewMemoryClickLog()
	}
	return &Store{
		byCode:  make(map[string]*models.URLMapping),
		retired: make(map[string]struct{}),
		clicks:  clicks,
	}
}

// Clicks returns the click log the store cascades into.
func (s *Store) Clicks() ClickLog {
	return s.clicks
}

// takenLocked reports whether code was ever issued in this run. Caller holds mu.
func (s *Store) takenLocked(code string) bool {
	if _, ok := s.byCode[code]; ok {
		return true
	}
	_, ok := s.retired[code]
	return ok
}

// Create inserts a new mapping, or returns the active mapping already held for
// the same (OriginalURL, OwnerID) pair with existed set.
func (s *Store) Create(p CreateParams, gen CodeGenerator) (models.URLMapping, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CustomAlias != "" && s.takenLocked(p.CustomAlias) {
		return models.URLMapping{}, false, fmt.Errorf("%w: custom alias %q", models.ErrConflict, p.CustomAlias)
	}

	for _, m := range s.byCode {
		if m.IsActive && m.OriginalURL == p.OriginalURL && m.OwnerID == p.OwnerID {
			return m.Clone(), true, nil
		}
	}

	code := p.CustomAlias
	if code == "" {
		var err error
		code, err = gen.Generate(s.takenLocked)
		if err != nil {
			return models.URLMapping{}, false, err
		}
	}

	s.nextID++
	m := &models.URLMapping{
		ID:          s.nextID,
		ShortCode:   code,
		CustomAlias: p.CustomAlias,
		OriginalURL: p.OriginalURL,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
		IsActive:    true,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.byCode[code] = m
	return m.Clone(), false, nil
}

// Get returns a copy of the mapping whose code or alias equals code.
func (s *Store) Get(code string) (models.URLMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byCode[code]
	if !ok {
		return models.URLMapping{}, fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}
	return m.Clone(), nil
}

// Mutate runs fn on the live mapping inside the write lock. Changes fn makes
// are kept even when it returns an error. The returned copy reflects the
// mapping after fn ran.
func (s *Store) Mutate(code, ownerID string, fn func(m *models.URLMapping) error) (models.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byCode[code]
	if !ok || !m.OwnedBy(ownerID) {
		return models.URLMapping{}, fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}
	err := fn(m)
	return m.Clone(), err
}

// View runs fn with a copy of the mapping while holding the read lock, so a
// concurrent Delete cannot interleave with it.
func (s *Store) View(code string, fn func(m models.URLMapping) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byCode[code]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}
	return fn(m.Clone())
}

// Delete removes the mapping and every click record under its code. The code
// is retired and never issued again.
func (s *Store) Delete(ctx context.Context, code, ownerID string) (models.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byCode[code]
	if !ok || !m.OwnedBy(ownerID) {
		return models.URLMapping{}, fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}
	if _, err := s.clicks.DeleteByCode(ctx, code); err != nil {
		return models.URLMapping{}, fmt.Errorf("failed to delete click records: %w", err)
	}
	delete(s.byCode, code)
	s.retired[code] = struct{}{}
	return m.Clone(), nil
}

// Snapshot returns copies of every mapping visible to ownerID, newest first.
func (s *Store) Snapshot(ownerID string) []models.URLMapping {
	s.mu.RLock()
	out := make([]models.URLMapping, 0, len(s.byCode))
	for _, m := range s.byCode {
		if ownerID != "" && m.OwnerID != ownerID {
			continue
		}
		out = append(out, m.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// List returns one page of Snapshot and the unpaged total.
func (s *Store) List(q ListQuery) ([]models.URLMapping, int) {
	q = q.normalize()
	all := s.Snapshot(q.OwnerID)

	start := (q.Page - 1) * q.PageSize
	if start >= len(all) {
		return []models.URLMapping{}, len(all)
	}
	end := start + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byCode)
}
