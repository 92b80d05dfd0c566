package queries

import (
	"context"

	"roombook/internal/domain/appointment"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrQueryFailed         = errs.New("query failed")
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*appointment.Snapshot, error)
	// AuditTrail returns the change history newest first.
	AuditTrail(ctx context.Context, appointmentID uuid.UUID) ([]*AuditEntryView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*appointment.Snapshot, error)
	AuditTrail(ctx context.Context, appointmentID uuid.UUID) ([]*AuditEntryView, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error) {
	snap, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return snap, nil
}

func (q *appointmentQueriesImpl) List(ctx context.Context, filter AppointmentFilter) ([]*appointment.Snapshot, error) {
	snaps, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return snaps, nil
}

func (q *appointmentQueriesImpl) AuditTrail(ctx context.Context, appointmentID uuid.UUID) ([]*AuditEntryView, error) {
	entries, err := q.store.AuditTrail(ctx, appointmentID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return entries, nil
}
