package repository

import (
	"context"

	"roombook/internal/domain/appointment"
	"roombook/internal/infra"
	"roombook/internal/infra/converter"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create assigns the order number inside the INSERT itself: the max+1
// derivation from the source, made race-safe by per-statement atomicity
// plus the unique index on order_number.
func (r *AppointmentRepository) Create(ctx context.Context, snap *appointment.Snapshot) (int64, error) {
	bookingsRaw, err := converter.EncodeBookings(snap.RoomBookings)
	if err != nil {
		return 0, classify("failed to encode appointment", err)
	}

	const query = `
		INSERT INTO appointments (
			id, title, user_id, room_bookings, start_time, end_time, status, order_number,
			customer_name, customer_email, customer_phone, customer_organization, purpose, notes,
			membership_number, attendees_count, agreed_cost, final_revenue, rejection_reason,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			COALESCE((SELECT MAX(order_number) FROM appointments), 0) + 1,
			$8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING order_number`

	var orderNumber int64
	err = r.db.QueryRow(ctx, query,
		snap.ID,
		snap.Title,
		snap.UserID,
		bookingsRaw,
		pgconv.TimeToPgtype(snap.StartTime),
		pgconv.TimeToPgtype(snap.EndTime),
		snap.Status.String(),
		snap.CustomerName,
		snap.CustomerEmail,
		snap.CustomerPhone,
		snap.CustomerOrganization,
		snap.Purpose,
		snap.Notes,
		snap.MembershipNumber,
		snap.AttendeesCount,
		snap.AgreedCost,
		pgconv.Int64PtrToPgtype(snap.FinalRevenue),
		pgconv.StringPtrToPgtype(snap.RejectionReason),
		pgconv.TimeToPgtype(snap.CreatedAt),
		pgconv.TimeToPgtype(snap.UpdatedAt),
	).Scan(&orderNumber)
	if err != nil {
		return 0, classify("failed to create appointment", err)
	}

	return orderNumber, nil
}

// Update writes the full snapshot through the one parameterized write
// path; there is no separate raw-query escape hatch for single fields.
func (r *AppointmentRepository) Update(ctx context.Context, snap *appointment.Snapshot) error {
	bookingsRaw, err := converter.EncodeBookings(snap.RoomBookings)
	if err != nil {
		return classify("failed to encode appointment", err)
	}

	const query = `
		UPDATE appointments SET
			title = $2,
			room_bookings = $3,
			start_time = $4,
			end_time = $5,
			status = $6,
			customer_name = $7,
			customer_email = $8,
			customer_phone = $9,
			customer_organization = $10,
			purpose = $11,
			notes = $12,
			membership_number = $13,
			attendees_count = $14,
			agreed_cost = $15,
			final_revenue = $16,
			rejection_reason = $17,
			updated_at = $18
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		snap.ID,
		snap.Title,
		bookingsRaw,
		pgconv.TimeToPgtype(snap.StartTime),
		pgconv.TimeToPgtype(snap.EndTime),
		snap.Status.String(),
		snap.CustomerName,
		snap.CustomerEmail,
		snap.CustomerPhone,
		snap.CustomerOrganization,
		snap.Purpose,
		snap.Notes,
		snap.MembershipNumber,
		snap.AttendeesCount,
		snap.AgreedCost,
		pgconv.Int64PtrToPgtype(snap.FinalRevenue),
		pgconv.StringPtrToPgtype(snap.RejectionReason),
		pgconv.TimeToPgtype(snap.UpdatedAt),
	)
	if err != nil {
		return classify("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, classify("failed to delete appointment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Snapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+converter.AppointmentColumns+` FROM appointments WHERE id = $1`, id)

	snap, err := converter.ScanAppointment(row)
	if err != nil {
		return nil, classify("failed to find appointment by ID", err)
	}
	return snap, nil
}
