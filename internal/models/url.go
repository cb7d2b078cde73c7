package models

import (
	"time"
)

// URLMapping is one short link. ShortCode doubles as the lookup key for both
// generated codes and custom aliases.
type URLMapping struct {
	ID          uint64     `json:"id"`
	ShortCode   string     `json:"shortCode"`
	CustomAlias string     `json:"customAlias,omitempty"`
	OriginalURL string     `json:"originalUrl"`
	OwnerID     string     `json:"ownerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	ClickCount  int64      `json:"clickCount"`
	IsActive    bool       `json:"isActive"`
}

// Expired reports whether ExpiresAt is set and lies before now.
func (m URLMapping) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && m.ExpiresAt.Before(now)
}

// OwnedBy reports whether the mapping is visible to ownerID. An empty ownerID
// means the caller is unscoped.
func (m URLMapping) OwnedBy(ownerID string) bool {
	return ownerID == "" || m.OwnerID == ownerID
}

// Clone returns a deep copy safe to hand out of a lock.
func (m URLMapping) Clone() URLMapping {
	if m.ExpiresAt != nil {
		t := *m.ExpiresAt
		m.ExpiresAt = &t
	}
	return m
}

// URLStats is the public stats view of a mapping.
type URLStats struct {
	ShortCode   string     `json:"shortCode"`
	OriginalURL string     `json:"originalUrl"`
	ClickCount  int64      `json:"clickCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsActive    bool       `json:"isActive"`
}

func (m URLMapping) Stats() URLStats {
	c := m.Clone()
	return URLStats{
		ShortCode:   c.ShortCode,
		OriginalURL: c.OriginalURL,
		ClickCount:  c.ClickCount,
		CreatedAt:   c.CreatedAt,
		ExpiresAt:   c.ExpiresAt,
		IsActive:    c.IsActive,
	}
}
