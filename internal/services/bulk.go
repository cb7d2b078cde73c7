package services

import (
	"context"
	"fmt"
	"strings"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
)

const (
	BulkDelete     = "delete"
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
)

type BulkReport struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	FailedItems  []string `json:"failedItems"`
}

type BulkService struct {
	store *repository.Store
	audit *AuditService
}

func NewBulkService(store *repository.Store, audit *AuditService) *BulkService {
	return &BulkService{store: store, audit: audit}
}

// Apply runs operation on every code independently. It always returns a
// report; per-item failures are collected, never returned.
func (s *BulkService) Apply(ctx context.Context, codes []string, operation, ownerID string) BulkReport {
	op := strings.ToLower(strings.TrimSpace(operation))
	report := BulkReport{FailedItems: []string{}}

	for _, code := range codes {
		if err := s.applyOne(ctx, code, op, ownerID); err != nil {
			report.FailureCount++
			report.FailedItems = append(report.FailedItems, code)
			continue
		}
		report.SuccessCount++
	}

	report.Success = report.FailureCount == 0
	report.Message = "Bulk operation completed"
	if !report.Success {
		report.Message = fmt.Sprintf("Bulk operation completed with %d failures", report.FailureCount)
	}

	s.audit.LogAction(ownerID, ActionBulk, op, map[string]interface{}{
		"success_count": report.SuccessCount,
		"failure_count": report.FailureCount,
	})
	return report
}

func (s *BulkService) applyOne(ctx context.Context, code, op, ownerID string) error {
	switch op {
	case BulkDelete:
		_, err := s.store.Delete(ctx, code, ownerID)
		return err
	case BulkActivate, BulkDeactivate:
		_, err := s.store.Mutate(code, ownerID, func(m *models.URLMapping) error {
			m.IsActive = op == BulkActivate
			return nil
		})
		return err
	default:
		if _, err := s.store.Get(code); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", models.ErrUnknownOperation, op)
	}
}
