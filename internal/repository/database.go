package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tinyurl/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitClickDB opens the sqlite database backing GormClickLog. Only sqlite://
// URLs are accepted; the default points at a process-local in-memory database.
func InitClickDB(databaseURL string) (*gorm.DB, error) {
	if !strings.HasPrefix(databaseURL, "sqlite://") {
		return nil, fmt.Errorf("unsupported database driver: %s", databaseURL)
	}

	db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.ClickRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate click records: %w", err)
	}
	return db, nil
}

// GormClickLog stores click records through gorm.
type GormClickLog struct {
	db *gorm.DB
}

func NewGormClickLog(db *gorm.DB) *GormClickLog {
	return &GormClickLog{db: db}
}

func (l *GormClickLog) Append(ctx context.Context, rec models.ClickRecord) error {
	return l.db.WithContext(ctx).Create(&rec).Error
}

func (l *GormClickLog) ByCode(ctx context.Context, code string) ([]models.ClickRecord, error) {
	var out []models.ClickRecord
	if err := l.db.WithContext(ctx).Where("short_code = ?", code).Find(&out).Error; err != nil {
		return nil, err
	}
	// Stored timestamps are text; order on the decoded values.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClickedAt.Before(out[j].ClickedAt)
	})
	return out, nil
}

func (l *GormClickLog) DeleteByCode(ctx context.Context, code string) (int64, error) {
	res := l.db.WithContext(ctx).Where("short_code = ?", code).Delete(&models.ClickRecord{})
	return res.RowsAffected, res.Error
}
