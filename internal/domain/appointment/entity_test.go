//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		snap, err := builder.NewAppointmentBuilder().BuildSnapshot()
		require.NoError(t, err)
		require.NotNil(t, snap)

		assert.NotEqual(t, uuid.Nil, snap.ID)
		assert.Equal(t, appointment.StatusPending, snap.Status)
		assert.Equal(t, int64(5000), snap.AgreedCost)
		assert.Equal(t, snap.CreatedAt, snap.UpdatedAt)
		assert.Zero(t, snap.OrderNumber)
	})

	t.Run("missing start time", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		_, err := b.WithTimes(time.Time{}, b.EndTime).BuildSnapshot()
		assert.ErrorIs(t, err, appointment.ErrMissingStartTime)
	})

	t.Run("missing end time", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		_, err := b.WithTimes(b.StartTime, time.Time{}).BuildSnapshot()
		assert.ErrorIs(t, err, appointment.ErrMissingEndTime)
	})

	t.Run("end before start is allowed", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		_, err := b.WithTimes(b.EndTime, b.StartTime).BuildSnapshot()
		assert.NoError(t, err)
	})

	t.Run("no room bookings", func(t *testing.T) {
		_, err := appointment.NewSnapshot("t", uuid.New(), nil, time.Now(), time.Now().Add(time.Hour), time.Now())
		assert.ErrorIs(t, err, appointment.ErrNoRoomBookings)
	})

	t.Run("agreed cost sums bookings", func(t *testing.T) {
		snap, err := builder.NewAppointmentBuilder().
			WithExtraBooking(appointment.RoomBooking{RoomID: uuid.New(), RoomName: "B", CostType: appointment.CostTypeHourly, Cost: 2500}).
			BuildSnapshot()
		require.NoError(t, err)
		assert.Equal(t, int64(7500), snap.AgreedCost)
	})
}

func TestTransitions(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	newPending := func(t *testing.T) *appointment.Snapshot {
		snap, err := builder.NewAppointmentBuilder().BuildSnapshot()
		require.NoError(t, err)
		return snap
	}

	t.Run("finish requires approved status", func(t *testing.T) {
		snap := newPending(t)
		revenue := int64(8000)

		err := snap.Finish(&revenue, now)
		assert.ErrorIs(t, err, appointment.ErrFinishRequiresApproved)
		assert.Equal(t, appointment.StatusPending, snap.Status)
	})

	t.Run("finish requires final revenue", func(t *testing.T) {
		snap := newPending(t)
		snap.Approve(now)

		err := snap.Finish(nil, now)
		assert.ErrorIs(t, err, appointment.ErrFinalRevenueRequired)
		assert.Equal(t, appointment.StatusApproved, snap.Status)
	})

	t.Run("finish from approved stores revenue", func(t *testing.T) {
		snap := newPending(t)
		snap.Approve(now)
		revenue := int64(8000)

		require.NoError(t, snap.Finish(&revenue, now.Add(time.Hour)))
		assert.Equal(t, appointment.StatusFinished, snap.Status)
		require.NotNil(t, snap.FinalRevenue)
		assert.Equal(t, int64(8000), *snap.FinalRevenue)
		assert.Equal(t, now.Add(time.Hour), snap.UpdatedAt)
	})

	t.Run("reject without reason stores sentinel", func(t *testing.T) {
		snap := newPending(t)
		snap.Reject(nil, now)

		assert.Equal(t, appointment.StatusRejected, snap.Status)
		require.NotNil(t, snap.RejectionReason)
		assert.Equal(t, appointment.DefaultRejectionReason, *snap.RejectionReason)
	})

	t.Run("reject with empty reason stores sentinel", func(t *testing.T) {
		snap := newPending(t)
		empty := ""
		snap.Reject(&empty, now)

		require.NotNil(t, snap.RejectionReason)
		assert.Equal(t, appointment.DefaultRejectionReason, *snap.RejectionReason)
	})

	t.Run("reject with reason stores it verbatim", func(t *testing.T) {
		snap := newPending(t)
		reason := "room under renovation"
		snap.Reject(&reason, now)

		require.NotNil(t, snap.RejectionReason)
		assert.Equal(t, "room under renovation", *snap.RejectionReason)
	})

	t.Run("unguarded transitions apply from any status", func(t *testing.T) {
		snap := newPending(t)
		snap.Cancel(now)
		assert.Equal(t, appointment.StatusCancelled, snap.Status)

		// Permissive by contract: approve works even on a cancelled one.
		snap.Approve(now)
		assert.Equal(t, appointment.StatusApproved, snap.Status)
	})
}

func TestWindowClipping(t *testing.T) {
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mk := func(start, end time.Time) *appointment.Snapshot {
		snap, err := builder.NewAppointmentBuilder().WithTimes(start, end).BuildSnapshot()
		require.NoError(t, err)
		return snap
	}

	t.Run("fully inside window", func(t *testing.T) {
		snap := mk(windowStart.Add(24*time.Hour), windowStart.Add(30*time.Hour))
		assert.True(t, snap.Overlaps(windowStart, windowEnd))
		assert.InDelta(t, 6.0, snap.ClippedHours(windowStart, windowEnd), 1e-9)
	})

	t.Run("spanning the whole window clips to window length", func(t *testing.T) {
		snap := mk(windowStart.Add(-48*time.Hour), windowEnd.Add(48*time.Hour))
		assert.True(t, snap.Overlaps(windowStart, windowEnd))
		assert.InDelta(t, windowEnd.Sub(windowStart).Hours(), snap.ClippedHours(windowStart, windowEnd), 1e-9)
	})

	t.Run("straddling the start boundary clips the head", func(t *testing.T) {
		snap := mk(windowStart.Add(-2*time.Hour), windowStart.Add(3*time.Hour))
		assert.InDelta(t, 3.0, snap.ClippedHours(windowStart, windowEnd), 1e-9)
	})

	t.Run("touching boundary counts as overlapping with zero hours", func(t *testing.T) {
		snap := mk(windowStart.Add(-5*time.Hour), windowStart)
		assert.True(t, snap.Overlaps(windowStart, windowEnd))
		assert.Zero(t, snap.ClippedHours(windowStart, windowEnd))
	})

	t.Run("entirely outside window", func(t *testing.T) {
		snap := mk(windowEnd.Add(time.Hour), windowEnd.Add(4*time.Hour))
		assert.False(t, snap.Overlaps(windowStart, windowEnd))
		assert.Zero(t, snap.ClippedHours(windowStart, windowEnd))
	})
}
