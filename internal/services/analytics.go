package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
)

type DailyCount struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

type KeyCount struct {
	Key    string `json:"key"`
	Clicks int    `json:"clicks"`
}

type Analytics struct {
	ShortCode   string       `json:"shortCode"`
	TotalClicks int64        `json:"totalClicks"`
	LastClickAt *time.Time   `json:"lastClickAt,omitempty"`
	Daily       []DailyCount `json:"clicksByDate"`
	Countries   []KeyCount   `json:"clicksByCountry"`
	Referrers   []KeyCount   `json:"clicksByReferrer"`
	Browsers    []KeyCount   `json:"clicksByBrowser"`
	Devices     []KeyCount   `json:"clicksByDevice"`
}

type AnalyticsService struct {
	store *repository.Store
}

func NewAnalyticsService(store *repository.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Analytics rolls up the full click history of one mapping. TotalClicks comes
// from the mapping counter, not from the records.
func (s *AnalyticsService) Analytics(ctx context.Context, code, ownerID string) (*Analytics, error) {
	mapping, err := s.store.Get(code)
	if err != nil {
		return nil, err
	}
	if !mapping.OwnedBy(ownerID) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, code)
	}

	clicks, err := s.store.Clicks().ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return aggregate(mapping, clicks), nil
}

func aggregate(m models.URLMapping, clicks []models.ClickRecord) *Analytics {
	a := &Analytics{
		ShortCode:   m.ShortCode,
		TotalClicks: m.ClickCount,
	}

	daily := map[string]int{}
	countries := map[string]int{}
	referrers := map[string]int{}
	browsers := map[string]int{}
	devices := map[string]int{}

	for _, c := range clicks {
		if a.LastClickAt == nil || c.ClickedAt.After(*a.LastClickAt) {
			t := c.ClickedAt
			a.LastClickAt = &t
		}
		daily[c.ClickedAt.UTC().Format("2006-01-02")]++
		countInto(countries, c.Country)
		countInto(referrers, c.Referrer)
		countInto(browsers, c.Browser)
		countInto(devices, c.DeviceType)
	}

	a.Daily = make([]DailyCount, 0, len(daily))
	for d, n := range daily {
		a.Daily = append(a.Daily, DailyCount{Date: d, Clicks: n})
	}
	sort.Slice(a.Daily, func(i, j int) bool { return a.Daily[i].Date < a.Daily[j].Date })

	a.Countries = rank(countries)
	a.Referrers = rank(referrers)
	a.Browsers = rank(browsers)
	a.Devices = rank(devices)
	return a
}

func countInto(m map[string]int, key string) {
	if key != "" {
		m[key]++
	}
}

// rank orders by count descending, then key ascending.
func rank(m map[string]int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for k, n := range m {
		out = append(out, KeyCount{Key: k, Clicks: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Key < out[j].Key
	})
	return out
}
