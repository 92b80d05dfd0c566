package queries

import (
	"context"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/room"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

// StatsReadStore supplies the raw rows for the analytics report. The
// engine tolerates in-flight writes; reads are not snapshot-consistent.
type StatsReadStore interface {
	// ListOverlapping returns appointments of any status whose interval
	// touches [from, to], boundaries inclusive.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*appointment.Snapshot, error)
	ListRooms(ctx context.Context) ([]*room.Room, error)
	ListLocations(ctx context.Context) ([]*room.Location, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type StatsQueries interface {
	// Report aggregates utilization and revenue for the current
	// calendar month plus year-to-date revenue.
	Report(ctx context.Context) (*StatsReport, error)
}

type statsQueriesImpl struct {
	store StatsReadStore
	clock clock.Clock
	cfg   config.StatsConfig
}

func NewStatsQueries(store StatsReadStore, clk clock.Clock, cfg config.StatsConfig) StatsQueries {
	return &statsQueriesImpl{store: store, clock: clk, cfg: cfg}
}

// roomAccumulator collects per-room metrics while walking the
// appointment set once.
type roomAccumulator struct {
	hours          float64
	revenue        int64
	revenueYTD     int64
	bookingCount   int64
	countsByStatus map[string]int64
}

func (q *statsQueriesImpl) Report(ctx context.Context) (*StatsReport, error) {
	now := q.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	monthWindow := Window{Start: monthStart, End: monthEnd}
	ytdWindow := Window{Start: yearStart, End: now}

	// One fetch covers both windows: [yearStart, monthEnd] is a
	// superset of the month window and of year-to-date.
	appointments, err := q.store.ListOverlapping(ctx, yearStart, monthEnd)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	rooms, err := q.store.ListRooms(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	locations, err := q.store.ListLocations(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	statusCounts, err := q.store.CountByStatus(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	accs := make(map[uuid.UUID]*roomAccumulator, len(rooms))
	for _, r := range rooms {
		accs[r.ID] = &roomAccumulator{countsByStatus: map[string]int64{}}
	}

	for _, snap := range appointments {
		revenues := appointment.ReportingRevenues(snap)
		inMonth := snap.Overlaps(monthWindow.Start, monthWindow.End)
		inYTD := snap.Overlaps(ytdWindow.Start, ytdWindow.End)
		earning := snap.Status == appointment.StatusApproved || snap.Status == appointment.StatusFinished

		for i, booking := range snap.RoomBookings {
			acc, ok := accs[booking.RoomID]
			if !ok {
				// Booking against a room that no longer exists; the
				// snapshot keeps the denormalized name but the room
				// cannot be reported on.
				continue
			}
			if inMonth {
				acc.countsByStatus[snap.Status.String()]++
			}
			if !earning {
				continue
			}
			if inMonth {
				acc.hours += snap.ClippedHours(monthWindow.Start, monthWindow.End)
				acc.revenue += revenues[i]
				acc.bookingCount++
			}
			if inYTD {
				acc.revenueYTD += revenues[i]
			}
		}
	}

	nominalRoomHours := q.cfg.HoursPerDay * monthWindow.Days()

	roomStats := make([]RoomStats, 0, len(rooms))
	roomsByLocation := make(map[uuid.UUID][]*RoomStats)
	for _, r := range rooms {
		acc := accs[r.ID]
		stats := RoomStats{
			RoomID:         r.ID,
			RoomName:       r.Name,
			LocationID:     r.LocationID,
			BookedHours:    acc.hours,
			Revenue:        acc.revenue,
			RevenueYTD:     acc.revenueYTD,
			BookingCount:   acc.bookingCount,
			CountsByStatus: acc.countsByStatus,
		}
		if nominalRoomHours > 0 {
			// Deliberately unclamped: overlapping bookings can push a
			// room past 100%.
			stats.UtilizationPct = acc.hours / nominalRoomHours * 100
		}
		if acc.bookingCount > 0 {
			stats.AvgRevenuePerBooking = float64(acc.revenue) / float64(acc.bookingCount)
		}
		roomStats = append(roomStats, stats)
		if r.Active {
			last := &roomStats[len(roomStats)-1]
			roomsByLocation[r.LocationID] = append(roomsByLocation[r.LocationID], last)
		}
	}

	locationStats := make([]LocationStats, 0, len(locations))
	for _, l := range locations {
		active := roomsByLocation[l.ID]
		stats := LocationStats{
			LocationID:   l.ID,
			LocationName: l.Name,
			RoomCount:    len(active),
		}
		for _, rs := range active {
			stats.BookedHours += rs.BookedHours
			stats.Revenue += rs.Revenue
			stats.RevenueYTD += rs.RevenueYTD
			stats.BookingCount += rs.BookingCount
		}
		if denominator := nominalRoomHours * float64(stats.RoomCount); denominator > 0 {
			stats.UtilizationPct = stats.BookedHours / denominator * 100
		}
		if stats.BookingCount > 0 {
			stats.AvgRevenuePerBooking = float64(stats.Revenue) / float64(stats.BookingCount)
		}
		locationStats = append(locationStats, stats)
	}

	return &StatsReport{
		Window:         monthWindow,
		GeneratedAt:    now,
		HoursPerDay:    q.cfg.HoursPerDay,
		Rooms:          roomStats,
		Locations:      locationStats,
		CountsByStatus: statusCounts,
	}, nil
}
