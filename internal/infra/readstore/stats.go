package readstore

import (
	"context"
	"fmt"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/infra"
	"roombook/internal/infra/converter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsReadStore feeds the reporting aggregation with one wide fetch.
// Room and location listings come from the embedded RoomReadStore.
type StatsReadStore struct {
	*RoomReadStore
	db *pgxpool.Pool
}

func NewStatsReadStore(db *pgxpool.Pool) *StatsReadStore {
	return &StatsReadStore{RoomReadStore: NewRoomReadStore(db), db: db}
}

func (s *StatsReadStore) ListOverlapping(ctx context.Context, from, to time.Time) ([]*appointment.Snapshot, error) {
	// Inclusive on both boundaries: an appointment ending exactly at
	// `from` or starting exactly at `to` still counts as overlapping.
	query := fmt.Sprintf(`
		SELECT %s FROM appointments
		WHERE start_time <= $2 AND end_time >= $1
		ORDER BY start_time`, converter.AppointmentColumns)

	rows, err := s.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping appointments", err)
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

func (s *StatsReadStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT status, COUNT(*) FROM appointments GROUP BY status`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count appointments by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}
	return counts, nil
}
