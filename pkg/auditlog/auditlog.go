// Package auditlog records every state-changing action as an immutable
// entry. It is a pure side-effect sink: the inventory core never reads it
// back, and a failed write never aborts the action that triggered it.
package auditlog

import (
	"commissary/pkg/models"

	"go.uber.org/zap"
)

type Recorder interface {
	PersistLog(entry models.AuditLog, changes any) error
}

type Auditlog struct {
	r   Recorder
	log *zap.Logger
}

func NewAuditLog(recorder Recorder, log *zap.Logger) *Auditlog {
	return &Auditlog{r: recorder, log: log}
}

// Log appends an audit entry. Failures are reported on the operational log
// and swallowed.
func (a *Auditlog) Log(entityType string, entityID int, action string, changes any, userID *int) {
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
	}

	if err := a.r.PersistLog(entry, changes); err != nil {
		a.log.Warn("unable to create audit log entry",
			zap.String("entity_type", entityType),
			zap.Int("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
