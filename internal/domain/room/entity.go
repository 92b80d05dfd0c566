package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrLocationInUse = errors.New("location still has rooms assigned")
)

type Room struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LocationID uuid.UUID `json:"locationId"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewRoom(name string, locationID uuid.UUID, now time.Time) (*Room, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Room{
		ID:         uuid.New(),
		Name:       name,
		LocationID: locationID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewLocation(name string, latitude, longitude *float64, now time.Time) (*Location, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Location{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
