package auditlog

import (
	"assetdesk/pkg/models"

	"go.uber.org/zap"
)

type Auditlog struct {
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log writes one structured audit entry for the item.
func (a *Auditlog) Log(action string, data map[string]interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	auditLog.Data = data

	a.logger.Info("audit",
		zap.String("action", auditLog.Action),
		zap.String("resource_type", auditLog.ResourceType),
		zap.String("resource_id", auditLog.ResourceID),
		zap.Any("data", auditLog.Data),
	)
}

func NewAuditLog(logger *zap.Logger) *Auditlog {
	return &Auditlog{logger: logger.Named("audit")}
}
