package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type FieldChangeResponse struct {
	OldValue any `json:"oldValue"`
	NewValue any `json:"newValue"`
}

type AuditEntryResponse struct {
	ID            uuid.UUID                      `json:"id"`
	AppointmentID uuid.UUID                      `json:"appointmentId"`
	UserID        *uuid.UUID                     `json:"userId,omitempty"`
	ActorName     string                         `json:"actorName"`
	Action        string                         `json:"action"`
	ChangedFields []string                       `json:"changedFields"`
	Details       map[string]FieldChangeResponse `json:"details"`
	CreatedAt     time.Time                      `json:"createdAt"`
}

func FromAuditEntry(view *queries.AuditEntryView) *AuditEntryResponse {
	details := make(map[string]FieldChangeResponse, len(view.Details))
	for field, change := range view.Details {
		details[field] = FieldChangeResponse{
			OldValue: change.OldValue,
			NewValue: change.NewValue,
		}
	}

	return &AuditEntryResponse{
		ID:            view.ID,
		AppointmentID: view.AppointmentID,
		UserID:        view.UserID,
		ActorName:     view.ActorName,
		Action:        view.Action,
		ChangedFields: view.ChangedFields,
		Details:       details,
		CreatedAt:     view.CreatedAt,
	}
}

func FromAuditEntries(views []*queries.AuditEntryView) []*AuditEntryResponse {
	out := make([]*AuditEntryResponse, len(views))
	for i, view := range views {
		out[i] = FromAuditEntry(view)
	}
	return out
}
