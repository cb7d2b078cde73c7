package services

import (
	"encoding/json"
	"log/slog"
)

const (
	ActionCreateLink = "CREATE_LINK"
	ActionUpdateLink = "UPDATE_LINK"
	ActionDeleteLink = "DELETE_LINK"
	ActionBulk       = "BULK_OPERATION"
)

// AuditService writes one structured entry per state-changing action.
type AuditService struct {
	logger *slog.Logger
}

func NewAuditService(logger *slog.Logger) *AuditService {
	return &AuditService{logger: logger.With("component", "audit")}
}

func (s *AuditService) LogAction(ownerID, action, entityID string, details interface{}) {
	detailBytes, err := json.Marshal(details)
	if err != nil {
		s.logger.Warn("Failed to encode audit details", "action", action, "error", err)
		detailBytes = nil
	}

	s.logger.Info("audit",
		"action", action,
		"owner_id", ownerID,
		"entity_id", entityID,
		"details", string(detailBytes),
	)
}
