package queries

import (
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// AuditEntryView is one audit trail row with the actor's display name
// joined in.
type AuditEntryView struct {
	ID            uuid.UUID                    `json:"id"`
	AppointmentID uuid.UUID                    `json:"appointment_id"`
	UserID        *uuid.UUID                   `json:"user_id,omitempty"`
	ActorName     string                       `json:"actor_name"`
	Action        string                       `json:"action"`
	ChangedFields []string                     `json:"changed_fields"`
	Details       map[string]audit.FieldChange `json:"details"`
	CreatedAt     time.Time                    `json:"created_at"`
}

// AppointmentFilter narrows list queries; nil fields are ignored.
type AppointmentFilter struct {
	UserID *uuid.UUID
	RoomID *uuid.UUID
	Status *appointment.Status
	From   *time.Time
	To     *time.Time
}

// Window is a reporting interval. Overlap checks against it are
// boundary-inclusive on both ends.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Days() float64 {
	return w.End.Sub(w.Start).Hours() / 24
}

type RoomStats struct {
	RoomID               uuid.UUID        `json:"room_id"`
	RoomName             string           `json:"room_name"`
	LocationID           uuid.UUID        `json:"location_id"`
	BookedHours          float64          `json:"booked_hours"`
	UtilizationPct       float64          `json:"utilization_pct"`
	Revenue              int64            `json:"revenue"`
	RevenueYTD           int64            `json:"revenue_ytd"`
	BookingCount         int64            `json:"booking_count"`
	AvgRevenuePerBooking float64          `json:"avg_revenue_per_booking"`
	CountsByStatus       map[string]int64 `json:"counts_by_status"`
}

type LocationStats struct {
	LocationID           uuid.UUID `json:"location_id"`
	LocationName         string    `json:"location_name"`
	RoomCount            int       `json:"room_count"`
	BookedHours          float64   `json:"booked_hours"`
	UtilizationPct       float64   `json:"utilization_pct"`
	Revenue              int64     `json:"revenue"`
	RevenueYTD           int64     `json:"revenue_ytd"`
	BookingCount         int64     `json:"booking_count"`
	AvgRevenuePerBooking float64   `json:"avg_revenue_per_booking"`
}

type StatsReport struct {
	Window         Window           `json:"window"`
	GeneratedAt    time.Time        `json:"generated_at"`
	HoursPerDay    float64          `json:"hours_per_day"`
	Rooms          []RoomStats      `json:"rooms"`
	Locations      []LocationStats  `json:"locations"`
	CountsByStatus map[string]int64 `json:"counts_by_status"`
}
