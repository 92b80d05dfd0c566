package response

import (
	"time"

	"roombook/internal/domain/appointment"

	"github.com/google/uuid"
)

type RoomBookingResponse struct {
	RoomID              uuid.UUID `json:"roomId"`
	RoomName            string    `json:"roomName"`
	CostType            string    `json:"costType"`
	Cost                int64     `json:"cost"`
	RequestedFacilities []string  `json:"requestedFacilities,omitempty"`
}

type AppointmentResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Title                string                `json:"title"`
	UserID               uuid.UUID             `json:"userId"`
	RoomBookings         []RoomBookingResponse `json:"roomBookings"`
	StartTime            time.Time             `json:"startTime"`
	EndTime              time.Time             `json:"endTime"`
	Status               string                `json:"status"`
	OrderNumber          int64                 `json:"orderNumber"`
	CustomerName         string                `json:"customerName"`
	CustomerEmail        string                `json:"customerEmail"`
	CustomerPhone        string                `json:"customerPhone"`
	CustomerOrganization string                `json:"customerOrganization"`
	Purpose              string                `json:"purpose"`
	Notes                string                `json:"notes"`
	MembershipNumber     string                `json:"membershipNumber"`
	AttendeesCount       int32                 `json:"attendeesCount"`
	AgreedCost           int64                 `json:"agreedCost"`
	FinalRevenue         *int64                `json:"finalRevenue,omitempty"`
	RejectionReason      *string               `json:"rejectionReason,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

func FromAppointment(snap *appointment.Snapshot) *AppointmentResponse {
	bookings := make([]RoomBookingResponse, len(snap.RoomBookings))
	for i, b := range snap.RoomBookings {
		bookings[i] = RoomBookingResponse{
			RoomID:              b.RoomID,
			RoomName:            b.RoomName,
			CostType:            string(b.CostType),
			Cost:                b.Cost,
			RequestedFacilities: b.RequestedFacilities,
		}
	}

	return &AppointmentResponse{
		ID:                   snap.ID,
		Title:                snap.Title,
		UserID:               snap.UserID,
		RoomBookings:         bookings,
		StartTime:            snap.StartTime,
		EndTime:              snap.EndTime,
		Status:               snap.Status.String(),
		OrderNumber:          snap.OrderNumber,
		CustomerName:         snap.CustomerName,
		CustomerEmail:        snap.CustomerEmail,
		CustomerPhone:        snap.CustomerPhone,
		CustomerOrganization: snap.CustomerOrganization,
		Purpose:              snap.Purpose,
		Notes:                snap.Notes,
		MembershipNumber:     snap.MembershipNumber,
		AttendeesCount:       snap.AttendeesCount,
		AgreedCost:           snap.AgreedCost,
		FinalRevenue:         snap.FinalRevenue,
		RejectionReason:      snap.RejectionReason,
		CreatedAt:            snap.CreatedAt,
		UpdatedAt:            snap.UpdatedAt,
	}
}

func FromAppointments(snaps []*appointment.Snapshot) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(snaps))
	for i, snap := range snaps {
		out[i] = FromAppointment(snap)
	}
	return out
}
