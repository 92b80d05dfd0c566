package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type RoomStatsResponse struct {
	RoomID               uuid.UUID        `json:"roomId"`
	RoomName             string           `json:"roomName"`
	LocationID           uuid.UUID        `json:"locationId"`
	BookedHours          float64          `json:"bookedHours"`
	UtilizationPct       float64          `json:"utilizationPct"`
	Revenue              int64            `json:"revenue"`
	RevenueYTD           int64            `json:"revenueYtd"`
	BookingCount         int64            `json:"bookingCount"`
	AvgRevenuePerBooking float64          `json:"avgRevenuePerBooking"`
	CountsByStatus       map[string]int64 `json:"countsByStatus"`
}

type LocationStatsResponse struct {
	LocationID           uuid.UUID `json:"locationId"`
	LocationName         string    `json:"locationName"`
	RoomCount            int       `json:"roomCount"`
	BookedHours          float64   `json:"bookedHours"`
	UtilizationPct       float64   `json:"utilizationPct"`
	Revenue              int64     `json:"revenue"`
	RevenueYTD           int64     `json:"revenueYtd"`
	BookingCount         int64     `json:"bookingCount"`
	AvgRevenuePerBooking float64   `json:"avgRevenuePerBooking"`
}

type StatsResponse struct {
	Window         WindowResponse          `json:"window"`
	GeneratedAt    time.Time               `json:"generatedAt"`
	HoursPerDay    float64                 `json:"hoursPerDay"`
	Rooms          []RoomStatsResponse     `json:"rooms"`
	Locations      []LocationStatsResponse `json:"locations"`
	CountsByStatus map[string]int64        `json:"countsByStatus"`
}

func FromStatsReport(report *queries.StatsReport) *StatsResponse {
	rooms := make([]RoomStatsResponse, len(report.Rooms))
	for i, r := range report.Rooms {
		rooms[i] = RoomStatsResponse{
			RoomID:               r.RoomID,
			RoomName:             r.RoomName,
			LocationID:           r.LocationID,
			BookedHours:          r.BookedHours,
			UtilizationPct:       r.UtilizationPct,
			Revenue:              r.Revenue,
			RevenueYTD:           r.RevenueYTD,
			BookingCount:         r.BookingCount,
			AvgRevenuePerBooking: r.AvgRevenuePerBooking,
			CountsByStatus:       r.CountsByStatus,
		}
	}

	locations := make([]LocationStatsResponse, len(report.Locations))
	for i, l := range report.Locations {
		locations[i] = LocationStatsResponse{
			LocationID:           l.LocationID,
			LocationName:         l.LocationName,
			RoomCount:            l.RoomCount,
			BookedHours:          l.BookedHours,
			UtilizationPct:       l.UtilizationPct,
			Revenue:              l.Revenue,
			RevenueYTD:           l.RevenueYTD,
			BookingCount:         l.BookingCount,
			AvgRevenuePerBooking: l.AvgRevenuePerBooking,
		}
	}

	return &StatsResponse{
		Window:         WindowResponse{Start: report.Window.Start, End: report.Window.End},
		GeneratedAt:    report.GeneratedAt,
		HoursPerDay:    report.HoursPerDay,
		Rooms:          rooms,
		Locations:      locations,
		CountsByStatus: report.CountsByStatus,
	}
}
