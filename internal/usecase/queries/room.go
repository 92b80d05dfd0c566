package queries

import (
	"context"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomReadStore interface {
	ListRooms(ctx context.Context) ([]*room.Room, error)
	FindRoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	ListLocations(ctx context.Context) ([]*room.Location, error)
}

type RoomQueries interface {
	ListRooms(ctx context.Context) ([]*room.Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	ListLocations(ctx context.Context) ([]*room.Location, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) ListRooms(ctx context.Context) ([]*room.Room, error) {
	rooms, err := q.store.ListRooms(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rooms, nil
}

func (q *roomQueriesImpl) GetRoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := q.store.FindRoomByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rm, nil
}

func (q *roomQueriesImpl) ListLocations(ctx context.Context) ([]*room.Location, error) {
	locations, err := q.store.ListLocations(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return locations, nil
}
