package oracle

import (
	"fmt"
	"time"

	"github.com/arnavshah/storeshift-api/pkg/models"
)

// rankedConstraints is the constraint list handed to the oracle, hard to
// soft. Only the first two are re-enforced mechanically after the fact.
var rankedConstraints = []string{
	"Never assign a shift outside a candidate's available_from/available_to window.",
	"Never assign a shift that overlaps one of that staff member's existing shifts.",
	"Maximize the number of shortage slots covered.",
	"Prefer fewer, longer contiguous blocks over many short ones.",
	"Propose shifts of at least 2 hours.",
}

// BuildRequest assembles the oracle input for one store day. Pure data
// transformation: no decision logic lives here.
func BuildRequest(
	date, storeID string,
	gapRanges []models.GapRange,
	candidates []models.CandidateStaff,
	existing []models.ExistingShift,
) (*Request, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", models.ErrInvalidInput, date)
	}
	return &Request{
		Date:           date,
		DayName:        day.Weekday().String(),
		StoreID:        storeID,
		GapRanges:      gapRanges,
		Candidates:     candidates,
		ExistingShifts: existing,
		Constraints:    rankedConstraints,
	}, nil
}
