package models

import (
	"time"
)

// ClickRecord is one observed click. ShortCode is a lookup key, not an
// ownership relation.
type ClickRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ShortCode  string    `gorm:"not null;size:64;index" json:"shortCode"`
	ClickedAt  time.Time `gorm:"not null;index" json:"clickedAt"`
	IPAddress  string    `gorm:"size:45" json:"ipAddress"`
	UserAgent  string    `gorm:"type:text" json:"userAgent"`
	Referrer   string    `gorm:"size:255" json:"referrer,omitempty"`
	Country    string    `gorm:"size:100" json:"country,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	Browser    string    `gorm:"size:50" json:"browser,omitempty"`
	OS         string    `gorm:"size:100" json:"os,omitempty"`
	DeviceType string    `gorm:"size:50" json:"deviceType,omitempty"`
}

func (ClickRecord) TableName() string {
	return "click_records"
}
