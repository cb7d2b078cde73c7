package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
)

// RecentClickLimit caps the click history returned with a mapping's detail view.
const RecentClickLimit = 100

// UpdateDTO holds a partial update. Nil fields are left untouched.
type UpdateDTO struct {
	OriginalURL *string
	ExpiresAt   *time.Time
	IsActive    *bool
}

type URLPage struct {
	Items    []models.URLMapping `json:"items"`
	Total    int                 `json:"totalCount"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

type URLDetail struct {
	models.URLMapping
	ShortURL     string               `json:"shortUrl"`
	RecentClicks []models.ClickRecord `json:"recentClicks"`
}

type ManagementService struct {
	store     *repository.Store
	shortener *ShortenerService
	audit     *AuditService
}

func NewManagementService(store *repository.Store, shortener *ShortenerService, audit *AuditService) *ManagementService {
	return &ManagementService{store: store, shortener: shortener, audit: audit}
}

func (s *ManagementService) List(q repository.ListQuery) URLPage {
	items, total := s.store.List(q)
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = repository.DefaultPageSize
	}
	if size > repository.MaxPageSize {
		size = repository.MaxPageSize
	}
	return URLPage{Items: items, Total: total, Page: page, PageSize: size}
}

// Detail returns the mapping with its most recent clicks, newest first.
func (s *ManagementService) Detail(ctx context.Context, code, ownerID string) (*URLDetail, error) {
	m, err := s.store.Get(code)
	if err != nil {
		return nil, err
	}
	if !m.OwnedBy(ownerID) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}

	clicks, err := s.store.Clicks().ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &URLDetail{
		URLMapping:   m,
		ShortURL:     s.shortener.ShortURL(m.ShortCode),
		RecentClicks: recentClicks(clicks, RecentClickLimit),
	}, nil
}

func recentClicks(clicks []models.ClickRecord, limit int) []models.ClickRecord {
	out := make([]models.ClickRecord, len(clicks))
	copy(out, clicks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClickedAt.After(out[j].ClickedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Update validates the whole request before touching the mapping.
func (s *ManagementService) Update(code, ownerID string, dto UpdateDTO) (models.URLMapping, error) {
	if dto.OriginalURL != nil {
		if err := ValidateURL(*dto.OriginalURL); err != nil {
			return models.URLMapping{}, err
		}
	}

	changed := map[string]interface{}{}
	m, err := s.store.Mutate(code, ownerID, func(m *models.URLMapping) error {
		if dto.OriginalURL != nil {
			m.OriginalURL = *dto.OriginalURL
			changed["original_url"] = m.OriginalURL
		}
		if dto.ExpiresAt != nil {
			t := dto.ExpiresAt.UTC()
			m.ExpiresAt = &t
			changed["expires_at"] = t
		}
		if dto.IsActive != nil {
			m.IsActive = *dto.IsActive
			changed["is_active"] = m.IsActive
		}
		return nil
	})
	if err != nil {
		return models.URLMapping{}, err
	}

	s.audit.LogAction(ownerID, ActionUpdateLink, m.ShortCode, changed)
	return m, nil
}

func (s *ManagementService) Delete(ctx context.Context, code, ownerID string) error {
	return s.shortener.Delete(ctx, code, ownerID)
}
