package auditlog

import (
	"encoding/json"
	"fmt"

	"commissary/internal/repository"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistLog(entry models.AuditLog, changes any) error {
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log changes: %w", err)
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"action":      entry.Action,
			"changes":     changesJSON,
			"user_id":     entry.UserID,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) GetEntityLog(entityType string, entityID int) ([]models.AuditLog, error) {
	query := r.repository.GoquDBWrapper.
		From("audit_logs").
		Select("id", "entity_type", "entity_id", "action", "changes", "user_id", "created_at").
		Where(goqu.Ex{
			"entity_type": entityType,
			"entity_id":   entityID,
		}).
		Order(goqu.C("created_at").Desc())

	rows, err := query.Executor().Query()
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Action,
			&entry.ChangesRaw,
			&entry.UserID,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("unable to scan audit log row: %w", err)
		}
		entry.LoadFromDB()
		entries = append(entries, entry)
	}

	return entries, nil
}
