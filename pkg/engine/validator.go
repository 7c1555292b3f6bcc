package engine

import (
	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// Rejection reasons reported for proposals that fail validation
const (
	reasonUnknownStaff    = "unknown staff"
	reasonMalformedWindow = "malformed shift window"
	reasonOutsideWindow   = "outside availability window"
	reasonOverlap         = "overlaps existing shift"
)

type rejection struct {
	shift  models.ProposedShift
	reason string
}

// validateProposals re-checks every oracle proposal against the hard
// constraints, in order, dropping on the first failed check. Proposals are
// never fixed up. Accepted order follows proposal order; the returned slice
// is non-nil even when empty.
func validateProposals(
	proposed []models.ProposedShift,
	candidates []models.CandidateStaff,
	existing []models.ExistingShift,
) ([]models.ProposedShift, []rejection) {
	byStaff := make(map[string]models.CandidateStaff, len(candidates))
	for _, c := range candidates {
		byStaff[c.StaffID] = c
	}

	accepted := []models.ProposedShift{}
	var rejected []rejection

	for _, p := range proposed {
		cand, known := byStaff[p.StaffID]
		if !known {
			rejected = append(rejected, rejection{p, reasonUnknownStaff})
			continue
		}

		start, end, err := timeslot.ParseWindow(p.StartTime, p.EndTime)
		if err != nil {
			rejected = append(rejected, rejection{p, reasonMalformedWindow})
			continue
		}

		// Candidate windows were emitted by the resolver and always parse.
		from, _ := timeslot.TimeToMinutes(cand.AvailableFrom)
		to, _ := timeslot.TimeToMinutes(cand.AvailableTo)
		if start < from || end > to {
			rejected = append(rejected, rejection{p, reasonOutsideWindow})
			continue
		}

		overlaps := false
		for _, sh := range existing {
			if sh.StaffID != p.StaffID {
				continue
			}
			es, ee, err := timeslot.ParseWindow(sh.StartTime, sh.EndTime)
			if err != nil {
				continue
			}
			if timeslot.Overlaps(start, end, es, ee) {
				overlaps = true
				break
			}
		}
		if overlaps {
			rejected = append(rejected, rejection{p, reasonOverlap})
			continue
		}

		accepted = append(accepted, p)
	}
	return accepted, rejected
}
