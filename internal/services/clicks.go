package services

import (
	"context"
	"log/slog"
	"time"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
	"tinyurl/pkg/utils"

	"github.com/mssola/user_agent"
)

type ClickInput struct {
	Code      string
	IPAddress string
	UserAgent string
	Referrer  string
}

// ClickRecorder appends click records. Recording is best-effort: failures are
// logged and never reach the caller.
type ClickRecorder struct {
	store  *repository.Store
	geo    GeoLookup
	logger *slog.Logger
	maskIP bool
	now    func() time.Time
}

func NewClickRecorder(store *repository.Store, geo GeoLookup, logger *slog.Logger, maskIP bool) *ClickRecorder {
	if geo == nil {
		geo = NoopGeoLookup{}
	}
	return &ClickRecorder{
		store:  store,
		geo:    geo,
		logger: logger,
		maskIP: maskIP,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RecordClick stores one click event for an existing mapping. Unknown codes
// are ignored. Geo lookup happens before the store lock is taken; the append
// runs under it so a concurrent delete cannot leave an orphan record.
func (r *ClickRecorder) RecordClick(ctx context.Context, in ClickInput) {
	click := r.enrichClickData(in)

	err := r.store.View(in.Code, func(m models.URLMapping) error {
		click.ShortCode = m.ShortCode
		return r.store.Clicks().Append(ctx, click)
	})
	if err != nil && !models.IsNotFound(err) {
		r.logger.Error("Failed to record click", "short_code", in.Code, "error", err)
	}
}

// TrackClick counts a click reported directly by a client, then records it.
// The count is bumped regardless of active or expiry state.
func (r *ClickRecorder) TrackClick(ctx context.Context, in ClickInput) {
	_, err := r.store.Mutate(in.Code, "", func(m *models.URLMapping) error {
		m.ClickCount++
		return nil
	})
	if err != nil {
		return
	}
	r.RecordClick(ctx, in)
}

func (r *ClickRecorder) enrichClickData(in ClickInput) models.ClickRecord {
	click := models.ClickRecord{
		ID:        utils.NewRecordID(),
		ShortCode: in.Code,
		ClickedAt: r.now(),
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		Referrer:  in.Referrer,
	}

	if in.UserAgent != "" {
		ua := user_agent.New(in.UserAgent)
		browserName, browserVer := ua.Browser()
		click.Browser = browserName
		if browserVer != "" {
			click.Browser += " " + browserVer
		}
		click.OS = ua.OS()

		if ua.Mobile() {
			click.DeviceType = "Mobile"
		} else if ua.Bot() {
			click.DeviceType = "Bot"
		} else {
			click.DeviceType = "Desktop"
		}
	}

	click.Country, click.City = r.geo.Lookup(in.IPAddress)

	if r.maskIP {
		click.IPAddress = maskIP(click.IPAddress)
	}
	return click
}

func maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
