package appointment

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusFinished  Status = "finished"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusFinished, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the lifecycle. Only the
// finish transition is guarded; the rest of the machine is permissive.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFinished, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

type CostType string

const (
	CostTypeFlat        CostType = "flat"
	CostTypeHourly      CostType = "hourly"
	CostTypePerAttendee CostType = "perAttendee"
)

func (c CostType) IsValid() bool {
	switch c {
	case CostTypeFlat, CostTypeHourly, CostTypePerAttendee:
		return true
	default:
		return false
	}
}
