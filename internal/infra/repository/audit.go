package repository

import (
	"context"
	"encoding/json"

	"roombook/internal/domain/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLogRepository appends to the immutable change trail. There are
// deliberately no update or delete statements in this file.
type AuditLogRepository struct {
	db *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	oldData, err := marshalNullable(entry.OldData)
	if err != nil {
		return classify("failed to encode audit old data", err)
	}
	newData, err := marshalNullable(entry.NewData)
	if err != nil {
		return classify("failed to encode audit new data", err)
	}

	changedFields := entry.ChangedFields
	if changedFields == nil {
		changedFields = []string{}
	}
	changedRaw, err := json.Marshal(changedFields)
	if err != nil {
		return classify("failed to encode audit changed fields", err)
	}

	details := entry.Details
	if details == nil {
		details = map[string]audit.FieldChange{}
	}
	detailsRaw, err := json.Marshal(details)
	if err != nil {
		return classify("failed to encode audit details", err)
	}

	const query = `
		INSERT INTO audit_logs (id, appointment_id, user_id, action, old_data, new_data, changed_fields, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		entry.ID,
		entry.AppointmentID,
		entry.UserID,
		entry.Action,
		oldData,
		newData,
		changedRaw,
		detailsRaw,
		entry.CreatedAt,
	)
	if err != nil {
		return classify("failed to append audit log", err)
	}

	return nil
}

func marshalNullable(data any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	return json.Marshal(data)
}
