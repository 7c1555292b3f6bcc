// Package oracle defines the external assignment-proposal capability as a
// narrow pluggable interface plus the request/response contract it speaks.
// Whatever stands behind the interface is untrusted: its output must pass
// the engine's validator before it becomes real shifts.
package oracle

import (
	"context"
	"errors"

	"github.com/arnavshah/storeshift-api/pkg/models"
)

// ErrOracle marks any failure of the external assignment capability:
// transport errors, timeouts, or a payload that does not conform to the
// Response contract. Handlers map it to a 502, distinct from input errors
// and from legitimate "nothing to fill" outcomes.
var ErrOracle = errors.New("assignment oracle failure")

// Request is the structured input handed to the oracle: the day being
// filled, the grouped shortage ranges, the eligible staff with adjusted
// windows, and the existing shifts it must not collide with.
type Request struct {
	Date           string                  `json:"date"`
	DayName        string                  `json:"day_name"`
	StoreID        string                  `json:"store_id"`
	GapRanges      []models.GapRange       `json:"gap_ranges"`
	Candidates     []models.CandidateStaff `json:"candidates"`
	ExistingShifts []models.ExistingShift  `json:"existing_shifts"`
	Constraints    []string                `json:"constraints"`
}

// Summary carries the oracle's self-reported numbers. They are echoed for
// transparency but never trusted; coverage is always recomputed locally.
type Summary struct {
	TotalProposed     int    `json:"total_proposed"`
	EstimatedCoverage int    `json:"estimated_coverage"`
	Notes             string `json:"notes,omitempty"`
}

// Response is the oracle's raw answer before validation
type Response struct {
	ProposedShifts []models.ProposedShift `json:"proposed_shifts"`
	UnfilledSlots  []models.UnfilledSlot  `json:"unfilled_slots"`
	Summary        Summary                `json:"summary"`
}

// Oracle proposes concrete shifts for the gaps in a request. One attempt per
// invocation: implementations must not retry internally, and callers must
// not assume the call is idempotent or cheap.
type Oracle interface {
	Propose(ctx context.Context, req *Request) (*Response, error)
}
