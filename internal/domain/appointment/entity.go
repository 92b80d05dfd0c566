package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingStartTime       = errors.New("start time is required")
	ErrMissingEndTime         = errors.New("end time is required")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrFinishRequiresApproved = errors.New("appointment can only be finished from approved status")
	ErrFinalRevenueRequired   = errors.New("final revenue is required to finish an appointment")
)

// DefaultRejectionReason is stored when a rejection carries no reason.
const DefaultRejectionReason = "No reason provided"

// Snapshot is the full persisted state of an appointment. The JSON tags
// are the canonical field names used by the audit diff, the audit log
// payloads and the persistence layer, so the three never disagree.
type Snapshot struct {
	ID                   uuid.UUID     `json:"id"`
	Title                string        `json:"title"`
	UserID               uuid.UUID     `json:"userId"`
	RoomBookings         []RoomBooking `json:"roomBookings"`
	StartTime            time.Time     `json:"startTime"`
	EndTime              time.Time     `json:"endTime"`
	Status               Status        `json:"status"`
	OrderNumber          int64         `json:"orderNumber"`
	CustomerName         string        `json:"customerName"`
	CustomerEmail        string        `json:"customerEmail"`
	CustomerPhone        string        `json:"customerPhone"`
	CustomerOrganization string        `json:"customerOrganization"`
	Purpose              string        `json:"purpose"`
	Notes                string        `json:"notes"`
	MembershipNumber     string        `json:"membershipNumber"`
	AttendeesCount       int32         `json:"attendeesCount"`
	AgreedCost           int64         `json:"agreedCost"`
	FinalRevenue         *int64        `json:"finalRevenue"`
	RejectionReason      *string       `json:"rejectionReason"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

// NewSnapshot validates the creation invariants: parsable required
// dates and at least one valid room booking. end > start is expected
// but deliberately not enforced, matching the permissive source
// behavior.
func NewSnapshot(
	title string,
	userID uuid.UUID,
	bookings []RoomBooking,
	startTime, endTime time.Time,
	now time.Time,
) (*Snapshot, error) {
	if startTime.IsZero() {
		return nil, ErrMissingStartTime
	}
	if endTime.IsZero() {
		return nil, ErrMissingEndTime
	}
	if err := ValidateBookings(bookings); err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:           uuid.New(),
		Title:        title,
		UserID:       userID,
		RoomBookings: bookings,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       StatusPending,
		AgreedCost:   AgreedCost(bookings),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Finish is the only guarded transition: approved -> finished with an
// authoritative final revenue.
func (s *Snapshot) Finish(finalRevenue *int64, now time.Time) error {
	if s.Status != StatusApproved {
		return ErrFinishRequiresApproved
	}
	if finalRevenue == nil {
		return ErrFinalRevenueRequired
	}
	s.Status = StatusFinished
	s.FinalRevenue = finalRevenue
	s.UpdatedAt = now
	return nil
}

func (s *Snapshot) Approve(now time.Time) {
	s.Status = StatusApproved
	s.UpdatedAt = now
}

func (s *Snapshot) Reject(reason *string, now time.Time) {
	s.Status = StatusRejected
	if reason == nil || *reason == "" {
		sentinel := DefaultRejectionReason
		s.RejectionReason = &sentinel
	} else {
		s.RejectionReason = reason
	}
	s.UpdatedAt = now
}

func (s *Snapshot) Cancel(now time.Time) {
	s.Status = StatusCancelled
	s.UpdatedAt = now
}

// Overlaps reports whether the appointment interval touches the window
// [windowStart, windowEnd], boundaries inclusive. A booking spanning
// the whole window overlaps it.
func (s *Snapshot) Overlaps(windowStart, windowEnd time.Time) bool {
	return !s.StartTime.After(windowEnd) && !s.EndTime.Before(windowStart)
}

// ClippedHours is the portion of the booked interval that falls inside
// the window, in hours. Zero when there is no overlap.
func (s *Snapshot) ClippedHours(windowStart, windowEnd time.Time) float64 {
	start := s.StartTime
	if start.Before(windowStart) {
		start = windowStart
	}
	end := s.EndTime
	if end.After(windowEnd) {
		end = windowEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}
