package appointment

import "math"

// AttributedRevenues splits a finished appointment's final revenue
// across its room bookings, proportionally to each booking's original
// cost. With a single booking the full amount goes to that room. When
// no original cost was recorded for a multi-room booking the amount is
// split evenly, remainder cents to the first booking, so the sum is
// always conserved.
func AttributedRevenues(finalRevenue int64, bookings []RoomBooking) []int64 {
	n := len(bookings)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []int64{finalRevenue}
	}

	total := AgreedCost(bookings)
	out := make([]int64, n)
	if total > 0 {
		for i, b := range bookings {
			out[i] = int64(math.Round(float64(finalRevenue) * float64(b.Cost) / float64(total)))
		}
		return out
	}

	// Degenerate case: no proportion is computable.
	share := finalRevenue / int64(n)
	for i := range out {
		out[i] = share
	}
	out[0] += finalRevenue - share*int64(n)
	return out
}

// ReportingRevenues is what each room booking contributes to revenue
// reports: the attributed final revenue for finished appointments with
// an override, otherwise each booking's own original cost. Pure
// derivation, recomputed on every query; nothing is persisted.
func ReportingRevenues(s *Snapshot) []int64 {
	if s.Status == StatusFinished && s.FinalRevenue != nil {
		return AttributedRevenues(*s.FinalRevenue, s.RoomBookings)
	}
	out := make([]int64, len(s.RoomBookings))
	for i, b := range s.RoomBookings {
		out[i] = b.Cost
	}
	return out
}
