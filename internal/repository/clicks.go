package repository

import (
	"context"
	"sort"
	"sync"

	"tinyurl/internal/models"
)

// ClickLog is the append-only record of observed clicks, keyed by short code.
type ClickLog interface {
	Append(ctx context.Context, rec models.ClickRecord) error
	// ByCode returns every record for code, oldest first.
	ByCode(ctx context.Context, code string) ([]models.ClickRecord, error)
	DeleteByCode(ctx context.Context, code string) (int64, error)
}

type MemoryClickLog struct {
	mu      sync.RWMutex
	records map[string][]models.ClickRecord
}

func NewMemoryClickLog() *MemoryClickLog {
	return &MemoryClickLog{
		records: make(map[string][]models.ClickRecord),
	}
}

func (l *MemoryClickLog) Append(_ context.Context, rec models.ClickRecord) error {
	l.mu.Lock()
	l.records[rec.ShortCode] = append(l.records[rec.ShortCode], rec)
	l.mu.Unlock()
	return nil
}

func (l *MemoryClickLog) ByCode(_ context.Context, code string) ([]models.ClickRecord, error) {
	l.mu.RLock()
	out := make([]models.ClickRecord, len(l.records[code]))
	copy(out, l.records[code])
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClickedAt.Before(out[j].ClickedAt)
	})
	return out, nil
}

func (l *MemoryClickLog) DeleteByCode(_ context.Context, code string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := int64(len(l.records[code]))
	delete(l.records, code)
	return n, nil
}
