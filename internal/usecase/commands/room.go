package commands

import (
	"context"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound = errs.New("location not found")
	ErrLocationInUse    = errs.New("location still has rooms assigned")
)

type CreateRoomParams struct {
	Name       string
	LocationID uuid.UUID
}

type UpdateRoomParams struct {
	Name       *string
	LocationID *uuid.UUID
	Active     *bool
}

type CreateLocationParams struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, params CreateRoomParams) (*room.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, params UpdateRoomParams) (*room.Room, error)
	CreateLocation(ctx context.Context, params CreateLocationParams) (*room.Location, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	roomRepo     RoomRepository
	locationRepo LocationRepository
	clock        clock.Clock
}

func NewRoomCommands(roomRepo RoomRepository, locationRepo LocationRepository, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{
		roomRepo:     roomRepo,
		locationRepo: locationRepo,
		clock:        clk,
	}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, params CreateRoomParams) (*room.Room, error) {
	r, err := room.NewRoom(params.Name, params.LocationID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.roomRepo.Create(ctx, r); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return r, nil
}

func (c *roomCommandsImpl) UpdateRoom(ctx context.Context, id uuid.UUID, params UpdateRoomParams) (*room.Room, error) {
	r, err := c.roomRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, errs.Mark(room.ErrEmptyName, ErrDomainValidation)
		}
		r.Name = *params.Name
	}
	if params.LocationID != nil {
		r.LocationID = *params.LocationID
	}
	if params.Active != nil {
		r.Active = *params.Active
	}
	r.UpdatedAt = c.clock.Now()

	if err := c.roomRepo.Update(ctx, r); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return r, nil
}

func (c *roomCommandsImpl) CreateLocation(ctx context.Context, params CreateLocationParams) (*room.Location, error) {
	l, err := room.NewLocation(params.Name, params.Latitude, params.Longitude, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.locationRepo.Create(ctx, l); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return l, nil
}

func (c *roomCommandsImpl) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.locationRepo.Delete(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return errs.Mark(err, ErrLocationInUse)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !deleted {
		return ErrLocationNotFound
	}
	return nil
}
