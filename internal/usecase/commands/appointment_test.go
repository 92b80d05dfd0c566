//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"
	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/usecase/commands"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------
// in-memory fakes for the write-side ports
// ------------------------------------------------------------

type fakeAppointmentRepo struct {
	byID      map[uuid.UUID]*appointment.Snapshot
	nextOrder int64
	updateErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Snapshot)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, snap *appointment.Snapshot) (int64, error) {
	f.nextOrder++
	stored := *snap
	stored.OrderNumber = f.nextOrder
	f.byID[snap.ID] = &stored
	return f.nextOrder, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, snap *appointment.Snapshot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[snap.ID]; !ok {
		return infra.WrapRepoErr("appointment not found", errors.New("no rows"), infra.KindNotFound)
	}
	stored := *snap
	f.byID[snap.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Snapshot, error) {
	snap, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", errors.New("no rows"), infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

type fakeAuditRepo struct {
	entries   []*audit.Entry
	appendErr error
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *audit.Entry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeRoomRepo struct {
	rooms map[uuid.UUID]*room.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*room.Room)}
}

func (f *fakeRoomRepo) add(id uuid.UUID, name string) {
	f.rooms[id] = &room.Room{ID: id, Name: name, LocationID: uuid.New(), Active: true}
}

func (f *fakeRoomRepo) Create(_ context.Context, r *room.Room) error {
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeRoomRepo) Update(_ context.Context, r *room.Room) error {
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", errors.New("no rows"), infra.KindNotFound)
	}
	return r, nil
}

// fakeDispatcher records calls on a channel so tests can wait for the
// fire-and-forget goroutine.
type fakeDispatcher struct {
	calls chan string
	fail  bool
	panic bool
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{calls: make(chan string, 16)}
}

func (f *fakeDispatcher) record(kind string) (bool, error) {
	f.calls <- kind
	if f.panic {
		panic("dispatcher exploded")
	}
	if f.fail {
		return false, errors.New("smtp unreachable")
	}
	return true, nil
}

func (f *fakeDispatcher) AppointmentCreated(context.Context, *appointment.Snapshot, uuid.UUID) (bool, error) {
	return f.record("created")
}

func (f *fakeDispatcher) AppointmentUpdated(context.Context, *appointment.Snapshot, uuid.UUID, *appointment.Snapshot) (bool, error) {
	return f.record("updated")
}

func (f *fakeDispatcher) AppointmentStatusChanged(_ context.Context, _ *appointment.Snapshot, _ uuid.UUID, prev appointment.Status) (bool, error) {
	return f.record("status:" + prev.String())
}

func (f *fakeDispatcher) waitCall(t *testing.T) string {
	t.Helper()
	select {
	case kind := <-f.calls:
		return kind
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification dispatch")
		return ""
	}
}

// ------------------------------------------------------------

type fixture struct {
	cmds       commands.AppointmentCommands
	repo       *fakeAppointmentRepo
	auditRepo  *fakeAuditRepo
	roomRepo   *fakeRoomRepo
	dispatcher *fakeDispatcher
	clk        *clock.MockClock
	actor      uuid.UUID
}

func newFixture() *fixture {
	repo := newFakeAppointmentRepo()
	auditRepo := &fakeAuditRepo{}
	roomRepo := newFakeRoomRepo()
	dispatcher := newFakeDispatcher()
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	return &fixture{
		cmds:       commands.NewAppointmentCommands(repo, auditRepo, roomRepo, dispatcher, clk),
		repo:       repo,
		auditRepo:  auditRepo,
		roomRepo:   roomRepo,
		dispatcher: dispatcher,
		clk:        clk,
		actor:      uuid.New(),
	}
}

func (f *fixture) createOne(t *testing.T) *appointment.Snapshot {
	t.Helper()
	b := builder.NewAppointmentBuilder()
	f.roomRepo.add(b.RoomID, b.RoomName)
	snap, err := f.cmds.Create(context.Background(), b.BuildCreateParams(), f.actor)
	require.NoError(t, err)
	f.dispatcher.waitCall(t)
	return snap
}

func TestCreateAppointment(t *testing.T) {
	t.Run("assigns sequential order numbers", func(t *testing.T) {
		f := newFixture()
		first := f.createOne(t)
		second := f.createOne(t)

		assert.Equal(t, int64(1), first.OrderNumber)
		assert.Equal(t, int64(2), second.OrderNumber)
	})

	t.Run("denormalizes room names into bookings", func(t *testing.T) {
		f := newFixture()
		b := builder.NewAppointmentBuilder()
		f.roomRepo.add(b.RoomID, "Atrium")

		snap, err := f.cmds.Create(context.Background(), b.BuildCreateParams(), f.actor)
		require.NoError(t, err)
		assert.Equal(t, "Atrium", snap.RoomBookings[0].RoomName)
	})

	t.Run("records create audit entry without diff details", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		require.Len(t, f.auditRepo.entries, 1)
		entry := f.auditRepo.entries[0]
		assert.Equal(t, audit.ActionCreate, entry.Action)
		assert.Equal(t, snap.ID, entry.AppointmentID)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, f.actor, *entry.UserID)
		assert.Nil(t, entry.OldData)
		assert.NotNil(t, entry.NewData)
		assert.Empty(t, entry.ChangedFields)
	})

	t.Run("unknown room fails", func(t *testing.T) {
		f := newFixture()
		params := builder.NewAppointmentBuilder().BuildCreateParams()

		_, err := f.cmds.Create(context.Background(), params, f.actor)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("unparsable start time fails on create", func(t *testing.T) {
		f := newFixture()
		b := builder.NewAppointmentBuilder()
		f.roomRepo.add(b.RoomID, b.RoomName)
		params := b.BuildCreateParams()
		params.StartTime = "next tuesday"

		_, err := f.cmds.Create(context.Background(), params, f.actor)
		assert.ErrorIs(t, err, commands.ErrInvalidStartTime)
	})

	t.Run("date-only layout is accepted", func(t *testing.T) {
		f := newFixture()
		b := builder.NewAppointmentBuilder()
		f.roomRepo.add(b.RoomID, b.RoomName)
		params := b.BuildCreateParams()
		params.StartTime = "2026-03-11"
		params.EndTime = "2026-03-11 13:00"

		snap, err := f.cmds.Create(context.Background(), params, f.actor)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), snap.StartTime)
		assert.Equal(t, time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC), snap.EndTime)
	})
}

func TestUpdateAppointment(t *testing.T) {
	t.Run("notes-only change yields a single-field audit entry", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		notes := "catering confirmed"
		_, err := f.cmds.Update(context.Background(), snap.ID, commands.UpdateAppointmentParams{Notes: &notes}, f.actor)
		require.NoError(t, err)
		assert.Equal(t, "updated", f.dispatcher.waitCall(t))

		require.Len(t, f.auditRepo.entries, 2)
		entry := f.auditRepo.entries[1]
		assert.Equal(t, audit.ActionUpdate, entry.Action)
		assert.Equal(t, []string{"notes"}, entry.ChangedFields)
		assert.Equal(t, "catering confirmed", entry.Details["notes"].NewValue)
	})

	t.Run("no-op update records no audit entry", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		sameTitle := snap.Title
		_, err := f.cmds.Update(context.Background(), snap.ID, commands.UpdateAppointmentParams{Title: &sameTitle}, f.actor)
		require.NoError(t, err)
		f.dispatcher.waitCall(t)

		assert.Len(t, f.auditRepo.entries, 1) // only the create entry
	})

	t.Run("status change through update dispatches status notification", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		status := "approved"
		updated, err := f.cmds.Update(context.Background(), snap.ID, commands.UpdateAppointmentParams{Status: &status}, f.actor)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusApproved, updated.Status)
		assert.Equal(t, "status:pending", f.dispatcher.waitCall(t))
	})

	t.Run("invalid status value fails", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		status := "archived"
		_, err := f.cmds.Update(context.Background(), snap.ID, commands.UpdateAppointmentParams{Status: &status}, f.actor)
		assert.ErrorIs(t, err, commands.ErrInvalidStatusValue)
	})

	t.Run("unparsable date on update retains stored value", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		bad := "not-a-date"
		notes := "still updated"
		updated, err := f.cmds.Update(context.Background(), snap.ID,
			commands.UpdateAppointmentParams{StartTime: &bad, Notes: &notes}, f.actor)
		require.NoError(t, err)
		f.dispatcher.waitCall(t)

		assert.Equal(t, snap.StartTime, updated.StartTime)
		assert.Equal(t, "still updated", updated.Notes)
	})

	t.Run("rebooking rooms recomputes agreed cost", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		otherRoom := uuid.New()
		f.roomRepo.add(otherRoom, "Annex")
		bookings := []commands.RoomBookingParams{
			{RoomID: otherRoom, CostType: appointment.CostTypeFlat, Cost: 1200},
		}
		updated, err := f.cmds.Update(context.Background(), snap.ID,
			commands.UpdateAppointmentParams{RoomBookings: &bookings}, f.actor)
		require.NoError(t, err)
		f.dispatcher.waitCall(t)

		assert.Equal(t, int64(1200), updated.AgreedCost)
		assert.Equal(t, "Annex", updated.RoomBookings[0].RoomName)
	})

	t.Run("missing appointment fails", func(t *testing.T) {
		f := newFixture()
		title := "x"
		_, err := f.cmds.Update(context.Background(), uuid.New(), commands.UpdateAppointmentParams{Title: &title}, f.actor)
		assert.ErrorIs(t, err, commands.ErrAppointmentNotFound)
	})

	t.Run("failed audit write does not fail the mutation", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)
		f.auditRepo.appendErr = errors.New("audit table gone")

		notes := "changed anyway"
		updated, err := f.cmds.Update(context.Background(), snap.ID, commands.UpdateAppointmentParams{Notes: &notes}, f.actor)
		require.NoError(t, err)
		assert.Equal(t, "changed anyway", updated.Notes)
	})
}

func TestStatusCommands(t *testing.T) {
	t.Run("approve then finish with revenue", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		approved, err := f.cmds.Approve(context.Background(), snap.ID, f.actor)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusApproved, approved.Status)
		assert.Equal(t, "status:pending", f.dispatcher.waitCall(t))

		revenue := int64(8000)
		finished, err := f.cmds.Finish(context.Background(), snap.ID, &revenue, f.actor)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusFinished, finished.Status)
		assert.Equal(t, "status:approved", f.dispatcher.waitCall(t))

		// create + two status-change entries
		require.Len(t, f.auditRepo.entries, 3)
		assert.Equal(t, "status-changed-to-approved", f.auditRepo.entries[1].Action)
		assert.Equal(t, "status-changed-to-finished", f.auditRepo.entries[2].Action)
	})

	t.Run("finish from pending is rejected and leaves no trace", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		revenue := int64(8000)
		_, err := f.cmds.Finish(context.Background(), snap.ID, &revenue, f.actor)
		assert.ErrorIs(t, err, appointment.ErrFinishRequiresApproved)

		stored, findErr := f.repo.FindByID(context.Background(), snap.ID)
		require.NoError(t, findErr)
		assert.Equal(t, appointment.StatusPending, stored.Status)
		assert.Len(t, f.auditRepo.entries, 1)
	})

	t.Run("reject without reason stores the default", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		rejected, err := f.cmds.Reject(context.Background(), snap.ID, nil, f.actor)
		require.NoError(t, err)
		f.dispatcher.waitCall(t)

		require.NotNil(t, rejected.RejectionReason)
		assert.Equal(t, appointment.DefaultRejectionReason, *rejected.RejectionReason)
	})

	t.Run("dispatcher failure never reaches the caller", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)
		f.dispatcher.fail = true

		cancelled, err := f.cmds.Cancel(context.Background(), snap.ID, f.actor)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCancelled, cancelled.Status)
		f.dispatcher.waitCall(t)
	})

	t.Run("dispatcher panic never reaches the caller", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)
		f.dispatcher.panic = true

		cancelled, err := f.cmds.Cancel(context.Background(), snap.ID, f.actor)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCancelled, cancelled.Status)
		f.dispatcher.waitCall(t)
	})
}

func TestDeleteAppointment(t *testing.T) {
	t.Run("delete records audit with prior state", func(t *testing.T) {
		f := newFixture()
		snap := f.createOne(t)

		deleted, err := f.cmds.Delete(context.Background(), snap.ID, &f.actor)
		require.NoError(t, err)
		assert.True(t, deleted)

		require.Len(t, f.auditRepo.entries, 2)
		entry := f.auditRepo.entries[1]
		assert.Equal(t, audit.ActionDelete, entry.Action)
		assert.NotNil(t, entry.OldData)
		assert.Nil(t, entry.NewData)
	})

	t.Run("deleting a missing appointment reports false", func(t *testing.T) {
		f := newFixture()
		deleted, err := f.cmds.Delete(context.Background(), uuid.New(), &f.actor)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Empty(t, f.auditRepo.entries)
	})
}
