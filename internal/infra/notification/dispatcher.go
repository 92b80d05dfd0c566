package notification

import (
	"context"
	"log/slog"

	"roombook/internal/domain/appointment"

	"github.com/google/uuid"
)

// LogDispatcher is the default NotificationDispatcher binding. It
// records what a mail integration would send; swapping in a real
// transport only needs another implementation of the commands port.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) AppointmentCreated(_ context.Context, appt *appointment.Snapshot, actor uuid.UUID) (bool, error) {
	d.logger.Info("notification: appointment created",
		"appointment_id", appt.ID,
		"order_number", appt.OrderNumber,
		"actor", actor,
		"customer_email", appt.CustomerEmail,
	)
	return true, nil
}

func (d *LogDispatcher) AppointmentUpdated(_ context.Context, appt *appointment.Snapshot, actor uuid.UUID, _ *appointment.Snapshot) (bool, error) {
	d.logger.Info("notification: appointment updated",
		"appointment_id", appt.ID,
		"order_number", appt.OrderNumber,
		"actor", actor,
		"customer_email", appt.CustomerEmail,
	)
	return true, nil
}

func (d *LogDispatcher) AppointmentStatusChanged(_ context.Context, appt *appointment.Snapshot, actor uuid.UUID, previousStatus appointment.Status) (bool, error) {
	d.logger.Info("notification: appointment status changed",
		"appointment_id", appt.ID,
		"order_number", appt.OrderNumber,
		"actor", actor,
		"previous_status", previousStatus.String(),
		"new_status", appt.Status.String(),
		"customer_email", appt.CustomerEmail,
	)
	return true, nil
}
