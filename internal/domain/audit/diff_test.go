//go:build unit

package audit_test

import (
	"testing"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"
	"roombook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotPair(t *testing.T) (*appointment.Snapshot, *appointment.Snapshot) {
	t.Helper()
	b := builder.NewAppointmentBuilder()
	before, err := b.BuildSnapshot()
	require.NoError(t, err)
	after := *before
	return before, &after
}

func TestDiff(t *testing.T) {
	t.Run("identical snapshots produce empty diff", func(t *testing.T) {
		before, after := snapshotPair(t)

		changed, details, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Empty(t, changed)
		assert.Empty(t, details)
	})

	t.Run("diff is idempotent on its own output", func(t *testing.T) {
		before, after := snapshotPair(t)
		after.Notes = "changed"

		first, _, err := audit.Diff(before, after)
		require.NoError(t, err)
		second, _, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("single scalar change", func(t *testing.T) {
		before, after := snapshotPair(t)
		after.Notes = "bring whiteboard markers"

		changed, details, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, changed)
		assert.Equal(t, "Projector needed", details["notes"].OldValue)
		assert.Equal(t, "bring whiteboard markers", details["notes"].NewValue)
	})

	t.Run("changed field names are sorted", func(t *testing.T) {
		before, after := snapshotPair(t)
		after.Title = "Annual planning"
		after.Notes = "changed"
		after.CustomerName = "Someone Else"

		changed, _, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"customerName", "notes", "title"}, changed)
	})

	t.Run("updatedAt createdAt and userId are excluded", func(t *testing.T) {
		before, after := snapshotPair(t)
		after.UpdatedAt = after.UpdatedAt.Add(time.Hour)
		after.CreatedAt = after.CreatedAt.Add(time.Hour)
		after.UserID = before.UserID // unchanged, but would be excluded anyway

		changed, _, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Empty(t, changed)
	})

	t.Run("nested room bookings compared by value", func(t *testing.T) {
		before, after := snapshotPair(t)
		bookings := make([]appointment.RoomBooking, len(before.RoomBookings))
		copy(bookings, before.RoomBookings)
		bookings[0].Cost = 9999
		after.RoomBookings = bookings

		changed, details, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"roomBookings"}, changed)
		assert.Contains(t, details, "roomBookings")
	})

	t.Run("equal bookings in fresh slices are not a change", func(t *testing.T) {
		before, after := snapshotPair(t)
		bookings := make([]appointment.RoomBooking, len(before.RoomBookings))
		copy(bookings, before.RoomBookings)
		after.RoomBookings = bookings

		changed, _, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Empty(t, changed)
	})

	t.Run("pointer fields appearing count as changed", func(t *testing.T) {
		before, after := snapshotPair(t)
		revenue := int64(4200)
		after.FinalRevenue = &revenue
		after.Status = appointment.StatusFinished

		changed, details, err := audit.Diff(before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"finalRevenue", "status"}, changed)
		assert.Nil(t, details["finalRevenue"].OldValue)
		assert.Equal(t, float64(4200), details["finalRevenue"].NewValue)
	})

	t.Run("nil before acts as creation diff", func(t *testing.T) {
		_, after := snapshotPair(t)

		changed, details, err := audit.Diff(nil, after)
		require.NoError(t, err)
		assert.Contains(t, changed, "title")
		assert.Nil(t, details["title"].OldValue)
		assert.Equal(t, after.Title, details["title"].NewValue)
	})
}
