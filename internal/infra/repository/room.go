package repository

import (
	"context"

	"roombook/internal/domain/room"
	"roombook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	const query = `
		INSERT INTO rooms (id, name, location_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		rm.ID, rm.Name, rm.LocationID, rm.Active, rm.CreatedAt, rm.UpdatedAt,
	)
	if err != nil {
		return classify("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	const query = `
		UPDATE rooms
		SET name = $2, location_id = $3, active = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rm.ID, rm.Name, rm.LocationID, rm.Active, rm.UpdatedAt,
	)
	if err != nil {
		return classify("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const query = `
		SELECT id, name, location_id, active, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var rm room.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.Name, &rm.LocationID, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, classify("failed to find room", err)
	}
	return &rm, nil
}

type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *room.Location) error {
	const query = `
		INSERT INTO locations (id, name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		l.ID, l.Name, l.Latitude, l.Longitude, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return classify("failed to create location", err)
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `DELETE FROM locations WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, classify("failed to delete location", err)
	}
	return tag.RowsAffected() > 0, nil
}
