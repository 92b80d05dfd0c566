package converter

import (
	"encoding/json"

	"roombook/internal/domain/appointment"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AppointmentColumns is the single column list every appointment read
// goes through, so the row mapping below can never drift per query.
const AppointmentColumns = `id, title, user_id, room_bookings, start_time, end_time, status, order_number,
customer_name, customer_email, customer_phone, customer_organization, purpose, notes,
membership_number, attendees_count, agreed_cost, final_revenue, rejection_reason, created_at, updated_at`

type RowScanner interface {
	Scan(dest ...any) error
}

// ScanAppointment maps one appointments row onto the domain snapshot.
// This is the only place column values and snapshot fields meet; there
// is no ad hoc post-query patching anywhere else.
func ScanAppointment(row RowScanner) (*appointment.Snapshot, error) {
	var (
		snap            appointment.Snapshot
		id              uuid.UUID
		userID          uuid.UUID
		bookingsRaw     []byte
		startTime       pgtype.Timestamptz
		endTime         pgtype.Timestamptz
		status          string
		finalRevenue    pgtype.Int8
		rejectionReason pgtype.Text
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&id,
		&snap.Title,
		&userID,
		&bookingsRaw,
		&startTime,
		&endTime,
		&status,
		&snap.OrderNumber,
		&snap.CustomerName,
		&snap.CustomerEmail,
		&snap.CustomerPhone,
		&snap.CustomerOrganization,
		&snap.Purpose,
		&snap.Notes,
		&snap.MembershipNumber,
		&snap.AttendeesCount,
		&snap.AgreedCost,
		&finalRevenue,
		&rejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bookingsRaw, &snap.RoomBookings); err != nil {
		return nil, errs.Wrap(err, "failed to decode room bookings column")
	}

	snap.ID = id
	snap.UserID = userID
	snap.StartTime = pgconv.TimeFromPgtype(startTime)
	snap.EndTime = pgconv.TimeFromPgtype(endTime)
	snap.Status = appointment.Status(status)
	snap.FinalRevenue = pgconv.Int64PtrFromPgtype(finalRevenue)
	snap.RejectionReason = pgconv.StringPtrFromPgtype(rejectionReason)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &snap, nil
}

// EncodeBookings serializes the room bookings for the JSONB column.
func EncodeBookings(bookings []appointment.RoomBooking) ([]byte, error) {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode room bookings column")
	}
	return raw, nil
}
