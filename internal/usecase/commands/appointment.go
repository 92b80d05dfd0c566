package commands

import (
	"context"
	"log/slog"
	"time"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	ErrAppointmentNotFound     = errs.New("appointment not found")
	ErrRoomNotFound            = errs.New("room not found")
	ErrInvalidStartTime        = errs.New("missing or unparsable start time")
	ErrInvalidEndTime          = errs.New("missing or unparsable end time")
	ErrInvalidStatusValue      = errs.New("invalid status value")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Accepted request date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type RoomBookingParams struct {
	RoomID              uuid.UUID
	CostType            appointment.CostType
	Cost                int64
	RequestedFacilities []string
}

type CreateAppointmentParams struct {
	Title                string
	RoomBookings         []RoomBookingParams
	StartTime            string
	EndTime              string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	CustomerOrganization string
	Purpose              string
	Notes                string
	MembershipNumber     string
	AttendeesCount       int32
}

// UpdateAppointmentParams is a partial field set; nil means "leave as
// is". FinalRevenue and RejectionReason are owned by the finish and
// reject transitions and cannot be patched here.
type UpdateAppointmentParams struct {
	Title                *string
	RoomBookings         *[]RoomBookingParams
	StartTime            *string
	EndTime              *string
	Status               *string
	CustomerName         *string
	CustomerEmail        *string
	CustomerPhone        *string
	CustomerOrganization *string
	Purpose              *string
	Notes                *string
	MembershipNumber     *string
	AttendeesCount       *int32
}

type AppointmentCommands interface {
	Create(ctx context.Context, params CreateAppointmentParams, actor uuid.UUID) (*appointment.Snapshot, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateAppointmentParams, actor uuid.UUID) (*appointment.Snapshot, error)
	Approve(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*appointment.Snapshot, error)
	Finish(ctx context.Context, id uuid.UUID, finalRevenue *int64, actor uuid.UUID) (*appointment.Snapshot, error)
	Reject(ctx context.Context, id uuid.UUID, reason *string, actor uuid.UUID) (*appointment.Snapshot, error)
	Cancel(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*appointment.Snapshot, error)
	Delete(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error)
}

type appointmentCommandsImpl struct {
	appointmentRepo AppointmentRepository
	auditRepo       AuditLogRepository
	roomRepo        RoomRepository
	dispatcher      NotificationDispatcher
	clock           clock.Clock
}

func NewAppointmentCommands(
	appointmentRepo AppointmentRepository,
	auditRepo AuditLogRepository,
	roomRepo RoomRepository,
	dispatcher NotificationDispatcher,
	clk clock.Clock,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		roomRepo:        roomRepo,
		dispatcher:      dispatcher,
		clock:           clk,
	}
}

func (c *appointmentCommandsImpl) Create(
	ctx context.Context,
	params CreateAppointmentParams,
	actor uuid.UUID,
) (*appointment.Snapshot, error) {
	startTime, err := parseDate(params.StartTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStartTime)
	}
	endTime, err := parseDate(params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidEndTime)
	}

	bookings, err := c.resolveBookings(ctx, params.RoomBookings)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	snap, err := appointment.NewSnapshot(params.Title, actor, bookings, startTime, endTime, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	snap.CustomerName = params.CustomerName
	snap.CustomerEmail = params.CustomerEmail
	snap.CustomerPhone = params.CustomerPhone
	snap.CustomerOrganization = params.CustomerOrganization
	snap.Purpose = params.Purpose
	snap.Notes = params.Notes
	snap.MembershipNumber = params.MembershipNumber
	snap.AttendeesCount = params.AttendeesCount

	orderNumber, err := c.appointmentRepo.Create(ctx, snap)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	snap.OrderNumber = orderNumber

	c.recordAudit(ctx, audit.NewEntry(snap.ID, &actor, audit.ActionCreate, nil, snap, nil, nil, now))

	c.dispatch(func(ctx context.Context) (bool, error) {
		return c.dispatcher.AppointmentCreated(ctx, snap, actor)
	})

	return snap, nil
}

func (c *appointmentCommandsImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	params UpdateAppointmentParams,
	actor uuid.UUID,
) (*appointment.Snapshot, error) {
	before, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := cloneSnapshot(before)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := c.applyPartial(ctx, after, params); err != nil {
		return nil, err
	}
	after.UpdatedAt = c.clock.Now()

	if err := c.appointmentRepo.Update(ctx, after); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	changed, details, diffErr := audit.Diff(before, after)
	if diffErr != nil {
		slog.Error("failed to diff appointment snapshots", "appointment_id", id, "error", diffErr.Error())
	} else if len(changed) > 0 {
		c.recordAudit(ctx, audit.NewEntry(id, &actor, audit.ActionUpdate, before, after, changed, details, after.UpdatedAt))
	}

	if before.Status != after.Status {
		c.dispatch(func(ctx context.Context) (bool, error) {
			return c.dispatcher.AppointmentStatusChanged(ctx, after, actor, before.Status)
		})
	} else {
		c.dispatch(func(ctx context.Context) (bool, error) {
			return c.dispatcher.AppointmentUpdated(ctx, after, actor, before)
		})
	}

	return after, nil
}

func (c *appointmentCommandsImpl) Approve(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*appointment.Snapshot, error) {
	return c.transition(ctx, id, actor, func(snap *appointment.Snapshot, now time.Time) error {
		snap.Approve(now)
		return nil
	})
}

func (c *appointmentCommandsImpl) Finish(ctx context.Context, id uuid.UUID, finalRevenue *int64, actor uuid.UUID) (*appointment.Snapshot, error) {
	return c.transition(ctx, id, actor, func(snap *appointment.Snapshot, now time.Time) error {
		return snap.Finish(finalRevenue, now)
	})
}

func (c *appointmentCommandsImpl) Reject(ctx context.Context, id uuid.UUID, reason *string, actor uuid.UUID) (*appointment.Snapshot, error) {
	return c.transition(ctx, id, actor, func(snap *appointment.Snapshot, now time.Time) error {
		snap.Reject(reason, now)
		return nil
	})
}

func (c *appointmentCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*appointment.Snapshot, error) {
	return c.transition(ctx, id, actor, func(snap *appointment.Snapshot, now time.Time) error {
		snap.Cancel(now)
		return nil
	})
}

func (c *appointmentCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error) {
	before, err := c.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, nil
		}
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	deleted, err := c.appointmentRepo.Delete(ctx, id)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !deleted {
		return false, nil
	}

	if actor != nil {
		c.recordAudit(ctx, audit.NewEntry(id, actor, audit.ActionDelete, before, nil, nil, nil, c.clock.Now()))
	}

	return true, nil
}

// transition applies one status change with the shared
// fetch / clone / mutate / persist / audit / notify sequence.
func (c *appointmentCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	actor uuid.UUID,
	mutate func(*appointment.Snapshot, time.Time) error,
) (*appointment.Snapshot, error) {
	before, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := cloneSnapshot(before)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	if err := mutate(after, now); err != nil {
		return nil, err
	}

	if err := c.appointmentRepo.Update(ctx, after); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	changed, details, diffErr := audit.Diff(before, after)
	if diffErr != nil {
		slog.Error("failed to diff appointment snapshots", "appointment_id", id, "error", diffErr.Error())
	} else if len(changed) > 0 {
		action := audit.ActionUpdate
		if before.Status != after.Status {
			action = audit.ActionStatusChanged(after.Status.String())
		}
		c.recordAudit(ctx, audit.NewEntry(id, &actor, action, before, after, changed, details, now))
	}

	if before.Status != after.Status {
		c.dispatch(func(ctx context.Context) (bool, error) {
			return c.dispatcher.AppointmentStatusChanged(ctx, after, actor, before.Status)
		})
	}

	return after, nil
}

func (c *appointmentCommandsImpl) fetch(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error) {
	snap, err := c.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// applyPartial patches the snapshot in place. Unparsable dates are not
// fatal on update: the previous stored value is retained and a warning
// is logged.
func (c *appointmentCommandsImpl) applyPartial(ctx context.Context, snap *appointment.Snapshot, params UpdateAppointmentParams) error {
	if params.Title != nil {
		snap.Title = *params.Title
	}
	if params.RoomBookings != nil {
		bookings, err := c.resolveBookings(ctx, *params.RoomBookings)
		if err != nil {
			return err
		}
		if err := appointment.ValidateBookings(bookings); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		snap.RoomBookings = bookings
		snap.AgreedCost = appointment.AgreedCost(bookings)
	}
	if params.StartTime != nil {
		if t, err := parseDate(*params.StartTime); err != nil {
			slog.Warn("unparsable start time on update, previous value retained",
				"appointment_id", snap.ID, "value", *params.StartTime)
		} else {
			snap.StartTime = t
		}
	}
	if params.EndTime != nil {
		if t, err := parseDate(*params.EndTime); err != nil {
			slog.Warn("unparsable end time on update, previous value retained",
				"appointment_id", snap.ID, "value", *params.EndTime)
		} else {
			snap.EndTime = t
		}
	}
	if params.Status != nil {
		status := appointment.Status(*params.Status)
		if !status.IsValid() {
			return errs.Mark(appointment.ErrInvalidStatus, ErrInvalidStatusValue)
		}
		snap.Status = status
	}
	if params.CustomerName != nil {
		snap.CustomerName = *params.CustomerName
	}
	if params.CustomerEmail != nil {
		snap.CustomerEmail = *params.CustomerEmail
	}
	if params.CustomerPhone != nil {
		snap.CustomerPhone = *params.CustomerPhone
	}
	if params.CustomerOrganization != nil {
		snap.CustomerOrganization = *params.CustomerOrganization
	}
	if params.Purpose != nil {
		snap.Purpose = *params.Purpose
	}
	if params.Notes != nil {
		snap.Notes = *params.Notes
	}
	if params.MembershipNumber != nil {
		snap.MembershipNumber = *params.MembershipNumber
	}
	if params.AttendeesCount != nil {
		snap.AttendeesCount = *params.AttendeesCount
	}
	return nil
}

// resolveBookings denormalizes room names into the booking snapshots.
func (c *appointmentCommandsImpl) resolveBookings(ctx context.Context, params []RoomBookingParams) ([]appointment.RoomBooking, error) {
	bookings := make([]appointment.RoomBooking, 0, len(params))
	for _, p := range params {
		r, err := c.roomRepo.FindByID(ctx, p.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookings = append(bookings, appointment.RoomBooking{
			RoomID:              r.ID,
			RoomName:            r.Name,
			CostType:            p.CostType,
			Cost:                p.Cost,
			RequestedFacilities: p.RequestedFacilities,
		})
	}
	return bookings, nil
}

// recordAudit is best effort: the mutation is already committed, so a
// failed audit write is logged loudly and swallowed. It still breaks
// the audit-completeness invariant, hence the error level.
func (c *appointmentCommandsImpl) recordAudit(ctx context.Context, entry *audit.Entry) {
	if err := c.auditRepo.Append(ctx, entry); err != nil {
		slog.Error("audit log write failed for committed mutation",
			"appointment_id", entry.AppointmentID,
			"action", entry.Action,
			"error", err.Error())
	}
}

// dispatch fires a notification without blocking the request and
// without letting a dispatcher failure reach the caller.
func (c *appointmentCommandsImpl) dispatch(send func(context.Context) (bool, error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification dispatcher panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ok, err := send(ctx)
		if err != nil {
			slog.Warn("notification dispatch failed", "error", err.Error())
			return
		}
		if !ok {
			slog.Warn("notification dispatcher declined to send")
		}
	}()
}

func cloneSnapshot(src *appointment.Snapshot) (*appointment.Snapshot, error) {
	var dst appointment.Snapshot
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &dst, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.New("empty date value")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
