//go:build unit || e2e

package builder

import (
	"time"

	"roombook/internal/domain/appointment"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	Title          string
	UserID         uuid.UUID
	RoomID         uuid.UUID
	RoomName       string
	CostType       appointment.CostType
	Cost           int64
	ExtraBookings  []appointment.RoomBooking
	StartTime      time.Time
	EndTime        time.Time
	CustomerName   string
	CustomerEmail  string
	Purpose        string
	Notes          string
	AttendeesCount int32
	Now            time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &AppointmentBuilder{
		Title:          "Quarterly planning",
		UserID:         uuid.New(),
		RoomID:         uuid.New(),
		RoomName:       "Conference Room A",
		CostType:       appointment.CostTypeFlat,
		Cost:           5000,
		StartTime:      now.Add(24 * time.Hour),
		EndTime:        now.Add(28 * time.Hour),
		CustomerName:   "Erika Example",
		CustomerEmail:  "erika@example.com",
		Purpose:        "Planning session",
		Notes:          "Projector needed",
		AttendeesCount: 8,
		Now:            now,
	}
}

func (b *AppointmentBuilder) WithTitle(title string) *AppointmentBuilder {
	b.Title = title
	return b
}

func (b *AppointmentBuilder) WithUserID(id uuid.UUID) *AppointmentBuilder {
	b.UserID = id
	return b
}

func (b *AppointmentBuilder) WithRoom(id uuid.UUID, name string) *AppointmentBuilder {
	b.RoomID = id
	b.RoomName = name
	return b
}

func (b *AppointmentBuilder) WithCost(costType appointment.CostType, cost int64) *AppointmentBuilder {
	b.CostType = costType
	b.Cost = cost
	return b
}

func (b *AppointmentBuilder) WithExtraBooking(booking appointment.RoomBooking) *AppointmentBuilder {
	b.ExtraBookings = append(b.ExtraBookings, booking)
	return b
}

func (b *AppointmentBuilder) WithTimes(start, end time.Time) *AppointmentBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *AppointmentBuilder) WithNow(now time.Time) *AppointmentBuilder {
	b.Now = now
	return b
}

func (b *AppointmentBuilder) Bookings() []appointment.RoomBooking {
	bookings := []appointment.RoomBooking{{
		RoomID:   b.RoomID,
		RoomName: b.RoomName,
		CostType: b.CostType,
		Cost:     b.Cost,
	}}
	return append(bookings, b.ExtraBookings...)
}

func (b *AppointmentBuilder) BuildSnapshot() (*appointment.Snapshot, error) {
	snap, err := appointment.NewSnapshot(b.Title, b.UserID, b.Bookings(), b.StartTime, b.EndTime, b.Now)
	if err != nil {
		return nil, err
	}
	snap.CustomerName = b.CustomerName
	snap.CustomerEmail = b.CustomerEmail
	snap.Purpose = b.Purpose
	snap.Notes = b.Notes
	snap.AttendeesCount = b.AttendeesCount
	return snap, nil
}

func (b *AppointmentBuilder) BuildCreateParams() commands.CreateAppointmentParams {
	bookings := make([]commands.RoomBookingParams, 0, 1+len(b.ExtraBookings))
	for _, booking := range b.Bookings() {
		bookings = append(bookings, commands.RoomBookingParams{
			RoomID:              booking.RoomID,
			CostType:            booking.CostType,
			Cost:                booking.Cost,
			RequestedFacilities: booking.RequestedFacilities,
		})
	}
	return commands.CreateAppointmentParams{
		Title:          b.Title,
		RoomBookings:   bookings,
		StartTime:      b.StartTime.Format(time.RFC3339),
		EndTime:        b.EndTime.Format(time.RFC3339),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		Purpose:        b.Purpose,
		Notes:          b.Notes,
		AttendeesCount: b.AttendeesCount,
	}
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	bookings := make([]reqdto.RoomBookingRequest, 0, 1+len(b.ExtraBookings))
	for _, booking := range b.Bookings() {
		bookings = append(bookings, reqdto.RoomBookingRequest{
			RoomID:              booking.RoomID,
			CostType:            string(booking.CostType),
			Cost:                booking.Cost,
			RequestedFacilities: booking.RequestedFacilities,
		})
	}
	return reqdto.CreateAppointmentRequest{
		Title:          b.Title,
		RoomBookings:   bookings,
		StartTime:      b.StartTime.Format(time.RFC3339),
		EndTime:        b.EndTime.Format(time.RFC3339),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		Purpose:        b.Purpose,
		Notes:          b.Notes,
		AttendeesCount: b.AttendeesCount,
	}
}
