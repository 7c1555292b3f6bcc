package models

import "errors"

// ErrInvalidInput marks malformed scheduling data (negative required counts,
// inverted or unparseable time windows). Handlers map it to a 400.
var ErrInvalidInput = errors.New("invalid scheduling input")

// Time-off request statuses. Only approved requests affect eligibility.
const (
	TimeOffPending  = "pending"
	TimeOffApproved = "approved"
	TimeOffRejected = "rejected"
)

// Staff represents one member of a store's roster
type Staff struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// Requirement is the configured headcount for one half-hour slot
type Requirement struct {
	StoreID       string `json:"store_id"`
	DayOfWeek     int    `json:"day_of_week"`
	Slot          int    `json:"slot"`
	RequiredCount int    `json:"required_count"`
}

// ExistingShift is a committed shift already on the schedule. Same-day only;
// cross-midnight windows are rejected, never wrapped.
type ExistingShift struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityPattern is a recurring weekly availability window. At most one
// pattern per staff per day-of-week is honored; the first match wins.
type AvailabilityPattern struct {
	StaffID   string `json:"staff_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimeOffRequest marks a staff member as absent for a date. Empty start and
// end times mean the whole day.
type TimeOffRequest struct {
	StaffID   string `json:"staff_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Status    string `json:"status"`
}

// FullDay reports whether the request covers the entire date. A request with
// only one bound present is treated as full-day rather than guessed at.
func (r TimeOffRequest) FullDay() bool {
	return r.StartTime == "" || r.EndTime == ""
}

// GapSlot is an under-staffed half-hour slot. Shortage is always positive.
type GapSlot struct {
	Slot     int `json:"slot"`
	Required int `json:"required"`
	Current  int `json:"current"`
	Shortage int `json:"shortage"`
}

// GapRange is a run of consecutive gap slots merged for reporting
type GapRange struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxShortage int    `json:"max_shortage"`
}

// CandidateStaff is a roster member eligible for a new shift, with an
// availability window already narrowed for time-off. AvailableFrom is
// always strictly before AvailableTo.
type CandidateStaff struct {
	StaffID        string `json:"staff_id"`
	Name           string `json:"name"`
	EmploymentType string `json:"employment_type,omitempty"`
	AvailableFrom  string `json:"available_from"`
	AvailableTo    string `json:"available_to"`
}

// ProposedShift is one shift suggested by the assignment oracle. Untrusted
// until it passes validation.
type ProposedShift struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}

// UnfilledSlot reports a time range that could not be covered and why
type UnfilledSlot struct {
	TimeRange string `json:"time_range"`
	Reason    string `json:"reason"`
}

// ProposalResult is the validated outcome of one ProposeShifts invocation
type ProposalResult struct {
	Date           string          `json:"date"`
	BeforeCoverage int             `json:"before_coverage"`
	AfterCoverage  int             `json:"after_coverage"`
	AcceptedShifts []ProposedShift `json:"accepted_shifts"`
	UnfilledSlots  []UnfilledSlot  `json:"unfilled_slots"`
}
