package request

import (
	"roombook/internal/domain/appointment"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

// Dates arrive as strings on purpose: several client formats are
// accepted and parsed in the command layer, not here.

type RoomBookingRequest struct {
	RoomID              uuid.UUID `json:"roomId" binding:"required"`
	CostType            string    `json:"costType" binding:"required"`
	Cost                int64     `json:"cost"`
	RequestedFacilities []string  `json:"requestedFacilities,omitempty"`
}

type CreateAppointmentRequest struct {
	Title                string               `json:"title" binding:"required"`
	RoomBookings         []RoomBookingRequest `json:"roomBookings" binding:"required,min=1"`
	StartTime            string               `json:"startTime" binding:"required"`
	EndTime              string               `json:"endTime" binding:"required"`
	CustomerName         string               `json:"customerName"`
	CustomerEmail        string               `json:"customerEmail"`
	CustomerPhone        string               `json:"customerPhone"`
	CustomerOrganization string               `json:"customerOrganization"`
	Purpose              string               `json:"purpose"`
	Notes                string               `json:"notes"`
	MembershipNumber     string               `json:"membershipNumber"`
	AttendeesCount       int32                `json:"attendeesCount"`
}

func (r CreateAppointmentRequest) ToParams() commands.CreateAppointmentParams {
	return commands.CreateAppointmentParams{
		Title:                r.Title,
		RoomBookings:         toBookingParams(r.RoomBookings),
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerOrganization: r.CustomerOrganization,
		Purpose:              r.Purpose,
		Notes:                r.Notes,
		MembershipNumber:     r.MembershipNumber,
		AttendeesCount:       r.AttendeesCount,
	}
}

type UpdateAppointmentRequest struct {
	Title                *string               `json:"title,omitempty"`
	RoomBookings         *[]RoomBookingRequest `json:"roomBookings,omitempty"`
	StartTime            *string               `json:"startTime,omitempty"`
	EndTime              *string               `json:"endTime,omitempty"`
	Status               *string               `json:"status,omitempty"`
	CustomerName         *string               `json:"customerName,omitempty"`
	CustomerEmail        *string               `json:"customerEmail,omitempty"`
	CustomerPhone        *string               `json:"customerPhone,omitempty"`
	CustomerOrganization *string               `json:"customerOrganization,omitempty"`
	Purpose              *string               `json:"purpose,omitempty"`
	Notes                *string               `json:"notes,omitempty"`
	MembershipNumber     *string               `json:"membershipNumber,omitempty"`
	AttendeesCount       *int32                `json:"attendeesCount,omitempty"`
}

func (r UpdateAppointmentRequest) ToParams() commands.UpdateAppointmentParams {
	params := commands.UpdateAppointmentParams{
		Title:                r.Title,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Status:               r.Status,
		CustomerName:         r.CustomerName,
		CustomerEmail:        r.CustomerEmail,
		CustomerPhone:        r.CustomerPhone,
		CustomerOrganization: r.CustomerOrganization,
		Purpose:              r.Purpose,
		Notes:                r.Notes,
		MembershipNumber:     r.MembershipNumber,
		AttendeesCount:       r.AttendeesCount,
	}
	if r.RoomBookings != nil {
		bookings := toBookingParams(*r.RoomBookings)
		params.RoomBookings = &bookings
	}
	return params
}

type FinishAppointmentRequest struct {
	FinalRevenue *int64 `json:"finalRevenue"`
}

type RejectAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func toBookingParams(reqs []RoomBookingRequest) []commands.RoomBookingParams {
	params := make([]commands.RoomBookingParams, len(reqs))
	for i, b := range reqs {
		params[i] = commands.RoomBookingParams{
			RoomID:              b.RoomID,
			CostType:            appointment.CostType(b.CostType),
			Cost:                b.Cost,
			RequestedFacilities: b.RequestedFacilities,
		}
	}
	return params
}
