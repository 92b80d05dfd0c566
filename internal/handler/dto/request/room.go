package request

import (
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name       string    `json:"name" binding:"required"`
	LocationID uuid.UUID `json:"locationId" binding:"required"`
}

func (r CreateRoomRequest) ToParams() commands.CreateRoomParams {
	return commands.CreateRoomParams{
		Name:       r.Name,
		LocationID: r.LocationID,
	}
}

type UpdateRoomRequest struct {
	Name       *string    `json:"name,omitempty"`
	LocationID *uuid.UUID `json:"locationId,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

func (r UpdateRoomRequest) ToParams() commands.UpdateRoomParams {
	return commands.UpdateRoomParams{
		Name:       r.Name,
		LocationID: r.LocationID,
		Active:     r.Active,
	}
}

type CreateLocationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r CreateLocationRequest) ToParams() commands.CreateLocationParams {
	return commands.CreateLocationParams{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
