package appointment

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoRoomBookings  = errors.New("appointment requires at least one room booking")
	ErrInvalidCostType = errors.New("invalid cost type")
	ErrNegativeCost    = errors.New("cost cannot be negative")
)

// RoomBooking is the per-room slice of a multi-room appointment. RoomName
// is denormalized at booking time so the snapshot stays readable after
// room renames.
type RoomBooking struct {
	RoomID              uuid.UUID `json:"roomId"`
	RoomName            string    `json:"roomName"`
	CostType            CostType  `json:"costType"`
	Cost                int64     `json:"cost"`
	RequestedFacilities []string  `json:"requestedFacilities,omitempty"`
}

func (b RoomBooking) Validate() error {
	if !b.CostType.IsValid() {
		return ErrInvalidCostType
	}
	if b.Cost < 0 {
		return ErrNegativeCost
	}
	return nil
}

func ValidateBookings(bookings []RoomBooking) error {
	if len(bookings) == 0 {
		return ErrNoRoomBookings
	}
	for _, b := range bookings {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AgreedCost is the sum of the original per-room costs, in minor
// currency units.
func AgreedCost(bookings []RoomBooking) int64 {
	var total int64
	for _, b := range bookings {
		total += b.Cost
	}
	return total
}
