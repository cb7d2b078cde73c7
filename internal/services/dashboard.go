package services

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
)

const TopURLLimit = 5

type DashboardSummary struct {
	TotalURLs           int                 `json:"totalUrls"`
	ActiveURLs          int                 `json:"activeUrls"`
	ExpiredURLs         int                 `json:"expiredUrls"`
	TotalClicks         int64               `json:"totalClicks"`
	AverageClicksPerURL float64             `json:"averageClicksPerUrl"`
	TopURLs             []models.URLMapping `json:"topUrls"`
}

type DashboardService struct {
	store *repository.Store
	now   func() time.Time
}

func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Summary is a point-in-time view. Expired counts mappings past their expiry
// whether or not a resolve has deactivated them yet.
func (s *DashboardService) Summary(ownerID string) DashboardSummary {
	all := s.store.Snapshot(ownerID)
	now := s.now()

	sum := DashboardSummary{TotalURLs: len(all), TopURLs: []models.URLMapping{}}
	for _, m := range all {
		if m.IsActive {
			sum.ActiveURLs++
		}
		if m.Expired(now) {
			sum.ExpiredURLs++
		}
		sum.TotalClicks += m.ClickCount
	}
	if sum.TotalURLs > 0 {
		sum.AverageClicksPerURL = float64(sum.TotalClicks) / float64(sum.TotalURLs)
	}

	// Snapshot is newest first; a stable sort keeps that as the tiebreak.
	sort.SliceStable(all, func(i, j int) bool { return all[i].ClickCount > all[j].ClickCount })
	if len(all) > TopURLLimit {
		all = all[:TopURLLimit]
	}
	sum.TopURLs = append(sum.TopURLs, all...)
	return sum
}

var csvHeader = []string{"ShortCode", "OriginalUrl", "CreatedAt", "ClickCount", "IsActive", "ExpiresAt"}

// ExportCSV writes every mapping visible to ownerID, newest first.
func (s *DashboardService) ExportCSV(w io.Writer, ownerID string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range s.store.Snapshot(ownerID) {
		expires := ""
		if m.ExpiresAt != nil {
			expires = m.ExpiresAt.Format("2006-01-02")
		}
		row := []string{
			m.ShortCode,
			m.OriginalURL,
			m.CreatedAt.Format("2006-01-02"),
			strconv.FormatInt(m.ClickCount, 10),
			strconv.FormatBool(m.IsActive),
			expires,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
