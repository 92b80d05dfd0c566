package readstore

import (
	"context"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomReadStore struct {
	db *pgxpool.Pool
}

func NewRoomReadStore(db *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (s *RoomReadStore) ListRooms(ctx context.Context) ([]*room.Room, error) {
	const query = `
		SELECT id, name, location_id, active, created_at, updated_at
		FROM rooms
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	rooms := make([]*room.Room, 0)
	for rows.Next() {
		var rm room.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.LocationID, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		rooms = append(rooms, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return rooms, nil
}

func (s *RoomReadStore) FindRoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const query = `
		SELECT id, name, location_id, active, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var rm room.Room
	err := s.db.QueryRow(ctx, query, id).Scan(&rm.ID, &rm.Name, &rm.LocationID, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &rm, nil
}

func (s *RoomReadStore) ListLocations(ctx context.Context) ([]*room.Location, error) {
	const query = `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM locations
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list locations", err)
	}
	defer rows.Close()

	locations := make([]*room.Location, 0)
	for rows.Next() {
		var l room.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan location row", err)
		}
		locations = append(locations, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate locations", err)
	}
	return locations, nil
}
