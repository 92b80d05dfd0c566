package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"
	"roombook/internal/infra"
	"roombook/internal/infra/converter"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppointmentReadStore serves the query side with read-optimized SQL.
// Filters compose into a dynamic WHERE clause; every value goes through
// a placeholder, never string interpolation.
type AppointmentReadStore struct {
	db *pgxpool.Pool
}

func NewAppointmentReadStore(db *pgxpool.Pool) *AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, converter.AppointmentColumns)

	snap, err := converter.ScanAppointment(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return snap, nil
}

func (s *AppointmentReadStore) List(ctx context.Context, filter queries.AppointmentFilter) ([]*appointment.Snapshot, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		conds = append(conds, "user_id = "+arg(*filter.UserID))
	}
	if filter.RoomID != nil {
		// room_bookings is a JSONB array of objects keyed by roomId.
		conds = append(conds, "room_bookings @> "+arg(roomIDPredicate(*filter.RoomID)))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+arg(filter.Status.String()))
	}
	if filter.From != nil {
		conds = append(conds, "end_time >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "start_time <= "+arg(*filter.To))
	}

	query := fmt.Sprintf(`SELECT %s FROM appointments`, converter.AppointmentColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY start_time DESC, order_number DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	snaps := make([]*appointment.Snapshot, 0)
	for rows.Next() {
		snap, err := converter.ScanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return snaps, nil
}

func (s *AppointmentReadStore) AuditTrail(ctx context.Context, appointmentID uuid.UUID) ([]*queries.AuditEntryView, error) {
	const query = `
		SELECT a.id, a.appointment_id, a.user_id, COALESCE(u.display_name, ''),
		       a.action, a.changed_fields, a.details, a.created_at
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.appointment_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := s.db.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load audit trail", err)
	}
	defer rows.Close()

	entries := make([]*queries.AuditEntryView, 0)
	for rows.Next() {
		var (
			view       queries.AuditEntryView
			userID     pgtype.UUID
			changedRaw []byte
			detailsRaw []byte
		)
		if err := rows.Scan(
			&view.ID, &view.AppointmentID, &userID, &view.ActorName,
			&view.Action, &changedRaw, &detailsRaw, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit row", err)
		}
		view.UserID = pgconv.UUIDPtrFromPgtype(userID)
		if err := json.Unmarshal(changedRaw, &view.ChangedFields); err != nil {
			return nil, infra.WrapRepoErr("failed to decode changed fields", err)
		}
		view.Details = map[string]audit.FieldChange{}
		if len(detailsRaw) > 0 {
			if err := json.Unmarshal(detailsRaw, &view.Details); err != nil {
				return nil, infra.WrapRepoErr("failed to decode audit details", err)
			}
		}
		entries = append(entries, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit trail", err)
	}
	return entries, nil
}

func roomIDPredicate(roomID uuid.UUID) []byte {
	raw, _ := json.Marshal([]map[string]string{{"roomId": roomID.String()}})
	return raw
}
