//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/room"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/queries"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsStore struct {
	appointments []*appointment.Snapshot
	rooms        []*room.Room
	locations    []*room.Location
	statusCounts map[string]int64
}

func (f *fakeStatsStore) ListOverlapping(_ context.Context, from, to time.Time) ([]*appointment.Snapshot, error) {
	var out []*appointment.Snapshot
	for _, snap := range f.appointments {
		if snap.Overlaps(from, to) {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (f *fakeStatsStore) ListRooms(context.Context) ([]*room.Room, error) {
	return f.rooms, nil
}

func (f *fakeStatsStore) ListLocations(context.Context) ([]*room.Location, error) {
	return f.locations, nil
}

func (f *fakeStatsStore) CountByStatus(context.Context) (map[string]int64, error) {
	if f.statusCounts == nil {
		return map[string]int64{}, nil
	}
	return f.statusCounts, nil
}

type statsWorld struct {
	store    *fakeStatsStore
	clk      *clock.MockClock
	location *room.Location
	roomA    *room.Room
	roomB    *room.Room
}

// newStatsWorld pins "now" to 2026-03-10 so the month window is March
// 2026 (31 days) and seeds one location with two active rooms.
func newStatsWorld() *statsWorld {
	loc := &room.Location{ID: uuid.New(), Name: "Headquarters"}
	roomA := &room.Room{ID: uuid.New(), Name: "Aurora", LocationID: loc.ID, Active: true}
	roomB := &room.Room{ID: uuid.New(), Name: "Borealis", LocationID: loc.ID, Active: true}

	return &statsWorld{
		store: &fakeStatsStore{
			rooms:     []*room.Room{roomA, roomB},
			locations: []*room.Location{loc},
		},
		clk:      clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		location: loc,
		roomA:    roomA,
		roomB:    roomB,
	}
}

func (w *statsWorld) queries() queries.StatsQueries {
	return queries.NewStatsQueries(w.store, w.clk, config.StatsConfig{HoursPerDay: 12})
}

func (w *statsWorld) addAppointment(t *testing.T, r *room.Room, status appointment.Status, start, end time.Time, cost int64, finalRevenue *int64) *appointment.Snapshot {
	t.Helper()
	snap, err := builder.NewAppointmentBuilder().
		WithRoom(r.ID, r.Name).
		WithCost(appointment.CostTypeFlat, cost).
		WithTimes(start, end).
		BuildSnapshot()
	require.NoError(t, err)
	snap.Status = status
	snap.FinalRevenue = finalRevenue
	w.store.appointments = append(w.store.appointments, snap)
	return snap
}

func findRoomStats(t *testing.T, report *queries.StatsReport, id uuid.UUID) queries.RoomStats {
	t.Helper()
	for _, rs := range report.Rooms {
		if rs.RoomID == id {
			return rs
		}
	}
	t.Fatalf("room %s missing from report", id)
	return queries.RoomStats{}
}

func TestStatsReport(t *testing.T) {
	march := func(day, hour int) time.Time {
		return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
	}
	revenue := func(v int64) *int64 { return &v }

	t.Run("window is the current calendar month", func(t *testing.T) {
		w := newStatsWorld()
		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		assert.Equal(t, march(1, 0), report.Window.Start)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), report.Window.End)
		assert.Equal(t, 12.0, report.HoursPerDay)
	})

	t.Run("finished appointment earns its final revenue and hours", func(t *testing.T) {
		w := newStatsWorld()
		w.addAppointment(t, w.roomA, appointment.StatusFinished, march(5, 9), march(5, 19), 5000, revenue(8000))

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		rs := findRoomStats(t, report, w.roomA.ID)
		assert.Equal(t, 10.0, rs.BookedHours)
		assert.Equal(t, int64(8000), rs.Revenue)
		assert.Equal(t, int64(8000), rs.RevenueYTD)
		assert.Equal(t, int64(1), rs.BookingCount)
		assert.Equal(t, 8000.0, rs.AvgRevenuePerBooking)
		// 10h booked of 12h/day * 31 days nominal capacity
		assert.InDelta(t, 10.0/372.0*100, rs.UtilizationPct, 1e-9)
	})

	t.Run("finished without final revenue falls back to agreed cost", func(t *testing.T) {
		w := newStatsWorld()
		w.addAppointment(t, w.roomA, appointment.StatusFinished, march(5, 9), march(5, 11), 5000, nil)

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(5000), findRoomStats(t, report, w.roomA.ID).Revenue)
	})

	t.Run("only approved and finished earn", func(t *testing.T) {
		w := newStatsWorld()
		w.addAppointment(t, w.roomA, appointment.StatusPending, march(5, 9), march(5, 11), 5000, nil)
		w.addAppointment(t, w.roomA, appointment.StatusRejected, march(6, 9), march(6, 11), 5000, nil)
		w.addAppointment(t, w.roomA, appointment.StatusCancelled, march(7, 9), march(7, 11), 5000, nil)
		w.addAppointment(t, w.roomA, appointment.StatusApproved, march(8, 9), march(8, 11), 3000, nil)

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		rs := findRoomStats(t, report, w.roomA.ID)
		assert.Equal(t, int64(3000), rs.Revenue)
		assert.Equal(t, 2.0, rs.BookedHours)
		assert.Equal(t, int64(1), rs.BookingCount)
		// all four still show up in the per-room status counts
		assert.Equal(t, int64(1), rs.CountsByStatus["pending"])
		assert.Equal(t, int64(1), rs.CountsByStatus["rejected"])
		assert.Equal(t, int64(1), rs.CountsByStatus["cancelled"])
		assert.Equal(t, int64(1), rs.CountsByStatus["approved"])
	})

	t.Run("appointment spanning the month boundary is clipped", func(t *testing.T) {
		w := newStatsWorld()
		// Feb 28 18:00 through Mar 1 06:00: only six hours fall in March.
		w.addAppointment(t, w.roomA, appointment.StatusApproved,
			time.Date(2026, 2, 28, 18, 0, 0, 0, time.UTC), march(1, 6), 5000, nil)

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		rs := findRoomStats(t, report, w.roomA.ID)
		assert.Equal(t, 6.0, rs.BookedHours)
		// revenue is attributed whole, never prorated by clipping
		assert.Equal(t, int64(5000), rs.Revenue)
	})

	t.Run("multi-room booking splits revenue proportionally", func(t *testing.T) {
		w := newStatsWorld()
		snap, err := builder.NewAppointmentBuilder().
			WithRoom(w.roomA.ID, w.roomA.Name).
			WithCost(appointment.CostTypeFlat, 6000).
			WithExtraBooking(appointment.RoomBooking{
				RoomID:   w.roomB.ID,
				RoomName: w.roomB.Name,
				CostType: appointment.CostTypeFlat,
				Cost:     4000,
			}).
			WithTimes(march(5, 9), march(5, 13)).
			BuildSnapshot()
		require.NoError(t, err)
		snap.Status = appointment.StatusFinished
		snap.FinalRevenue = revenue(8000)
		w.store.appointments = append(w.store.appointments, snap)

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(4800), findRoomStats(t, report, w.roomA.ID).Revenue)
		assert.Equal(t, int64(3200), findRoomStats(t, report, w.roomB.ID).Revenue)
	})

	t.Run("january revenue counts toward YTD but not the month", func(t *testing.T) {
		w := newStatsWorld()
		w.addAppointment(t, w.roomA, appointment.StatusFinished,
			time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), 5000, revenue(7000))

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		rs := findRoomStats(t, report, w.roomA.ID)
		assert.Equal(t, int64(0), rs.Revenue)
		assert.Equal(t, 0.0, rs.BookedHours)
		assert.Equal(t, int64(7000), rs.RevenueYTD)
	})

	t.Run("booking against a deleted room is skipped", func(t *testing.T) {
		w := newStatsWorld()
		ghost := &room.Room{ID: uuid.New(), Name: "Demolished"}
		w.addAppointment(t, ghost, appointment.StatusFinished, march(5, 9), march(5, 11), 5000, revenue(5000))

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		for _, rs := range report.Rooms {
			assert.Equal(t, int64(0), rs.Revenue)
		}
	})

	t.Run("location aggregates only active rooms", func(t *testing.T) {
		w := newStatsWorld()
		w.roomB.Active = false
		w.addAppointment(t, w.roomA, appointment.StatusApproved, march(5, 9), march(5, 15), 5000, nil)
		w.addAppointment(t, w.roomB, appointment.StatusApproved, march(6, 9), march(6, 15), 9000, nil)

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		require.Len(t, report.Locations, 1)
		ls := report.Locations[0]
		assert.Equal(t, w.location.ID, ls.LocationID)
		assert.Equal(t, 1, ls.RoomCount)
		assert.Equal(t, 6.0, ls.BookedHours)
		assert.Equal(t, int64(5000), ls.Revenue)
		assert.InDelta(t, 6.0/372.0*100, ls.UtilizationPct, 1e-9)
	})

	t.Run("location with no active rooms reports zeroes", func(t *testing.T) {
		w := newStatsWorld()
		w.roomA.Active = false
		w.roomB.Active = false

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)

		require.Len(t, report.Locations, 1)
		ls := report.Locations[0]
		assert.Equal(t, 0, ls.RoomCount)
		assert.Equal(t, 0.0, ls.UtilizationPct)
		assert.Equal(t, int64(0), ls.Revenue)
	})

	t.Run("global status counts pass through from the store", func(t *testing.T) {
		w := newStatsWorld()
		w.store.statusCounts = map[string]int64{"pending": 4, "finished": 2}

		report, err := w.queries().Report(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), report.CountsByStatus["pending"])
		assert.Equal(t, int64(2), report.CountsByStatus["finished"])
	})
}
