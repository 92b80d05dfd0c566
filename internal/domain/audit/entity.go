package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ActionStatusChanged labels a status transition, e.g.
// "status-changed-to-rejected".
func ActionStatusChanged(status string) string {
	return "status-changed-to-" + status
}

// Entry is one immutable field-level change record. Written exactly
// once per mutating appointment operation that produced a non-empty
// diff; never updated or deleted afterwards.
type Entry struct {
	ID            uuid.UUID              `json:"id"`
	AppointmentID uuid.UUID              `json:"appointmentId"`
	UserID        *uuid.UUID             `json:"userId"`
	Action        string                 `json:"action"`
	OldData       any                    `json:"oldData"`
	NewData       any                    `json:"newData"`
	ChangedFields []string               `json:"changedFields"`
	Details       map[string]FieldChange `json:"details"`
	CreatedAt     time.Time              `json:"createdAt"`
}

func NewEntry(
	appointmentID uuid.UUID,
	userID *uuid.UUID,
	action string,
	oldData, newData any,
	changedFields []string,
	details map[string]FieldChange,
	now time.Time,
) *Entry {
	return &Entry{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		UserID:        userID,
		Action:        action,
		OldData:       oldData,
		NewData:       newData,
		ChangedFields: changedFields,
		Details:       details,
		CreatedAt:     now,
	}
}
