package commands

import (
	"context"

	"roombook/internal/domain/appointment"
	"roombook/internal/domain/audit"
	"roombook/internal/domain/room"

	"github.com/google/uuid"
)

// Write-side ports. Infra provides the pgx implementations; unit tests
// substitute in-memory fakes.

type AppointmentRepository interface {
	// Create persists the snapshot and assigns the next order number
	// (max existing + 1). The returned value is the assigned number.
	Create(ctx context.Context, snap *appointment.Snapshot) (int64, error)
	Update(ctx context.Context, snap *appointment.Snapshot) error
	// Delete reports whether a row existed. Absence is not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error)
}

type AuditLogRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type LocationRepository interface {
	Create(ctx context.Context, l *room.Location) error
	// Delete fails with KindForeignKeyViolated while rooms still
	// reference the location.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// NotificationDispatcher is the outbound status-mail collaborator.
// All three calls are advisory: the boolean result and any error are
// logged by the caller and never fail the underlying mutation.
type NotificationDispatcher interface {
	AppointmentCreated(ctx context.Context, appt *appointment.Snapshot, actor uuid.UUID) (bool, error)
	AppointmentUpdated(ctx context.Context, appt *appointment.Snapshot, actor uuid.UUID, previous *appointment.Snapshot) (bool, error)
	AppointmentStatusChanged(ctx context.Context, appt *appointment.Snapshot, actor uuid.UUID, previousStatus appointment.Status) (bool, error)
}
