// Package eligibility derives, for one store date, the staff who may be
// proposed for a new shift: availability pattern present, not on approved
// time off, not already scheduled that day.
package eligibility

import (
	"fmt"

	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// ResolveCandidates filters the roster down to staff who could take a new
// shift on date, each with an availability window already narrowed for
// approved partial time off. The returned windows always satisfy from < to;
// staff whose window collapses are excluded entirely.
//
// Only one availability pattern per staff per day-of-week is honored (the
// first match); disjoint same-day windows are not modeled.
func ResolveCandidates(
	roster []models.Staff,
	patterns []models.AvailabilityPattern,
	timeOff []models.TimeOffRequest,
	shifts []models.ExistingShift,
	date string,
	dayOfWeek int,
) ([]models.CandidateStaff, error) {
	patternFor := make(map[string]models.AvailabilityPattern)
	for _, p := range patterns {
		if p.DayOfWeek != dayOfWeek {
			continue
		}
		if _, ok := patternFor[p.StaffID]; !ok {
			patternFor[p.StaffID] = p
		}
	}

	fullDayOff := make(map[string]bool)
	partialOff := make(map[string][]models.TimeOffRequest)
	for _, off := range timeOff {
		if off.Status != models.TimeOffApproved || off.Date != date {
			continue
		}
		if off.FullDay() {
			fullDayOff[off.StaffID] = true
		} else {
			partialOff[off.StaffID] = append(partialOff[off.StaffID], off)
		}
	}

	scheduled := make(map[string]bool)
	for _, sh := range shifts {
		if sh.Date == date {
			scheduled[sh.StaffID] = true
		}
	}

	var candidates []models.CandidateStaff
	for _, member := range roster {
		if fullDayOff[member.ID] || scheduled[member.ID] {
			continue
		}
		pattern, ok := patternFor[member.ID]
		if !ok {
			continue
		}
		from, to, err := timeslot.ParseWindow(pattern.StartTime, pattern.EndTime)
		if err != nil {
			return nil, fmt.Errorf("availability for staff %s: %w", member.ID, err)
		}

		excluded := false
		for _, off := range partialOff[member.ID] {
			offStart, offEnd, err := timeslot.ParseWindow(off.StartTime, off.EndTime)
			if err != nil {
				return nil, fmt.Errorf("time off for staff %s: %w", member.ID, err)
			}
			from, to, excluded = narrow(from, to, offStart, offEnd)
			if excluded {
				break
			}
		}
		if excluded || from >= to {
			continue
		}

		candidates = append(candidates, models.CandidateStaff{
			StaffID:        member.ID,
			Name:           member.Name,
			EmploymentType: member.EmploymentType,
			AvailableFrom:  timeslot.MinutesToTime(from),
			AvailableTo:    timeslot.MinutesToTime(to),
		})
	}
	return candidates, nil
}

// narrow intersects an availability window with one approved off window.
// An off window starting inside availability keeps the earlier part; one
// ending inside keeps the later part; anything else (the off window covers
// or straddles availability) excludes the staff member outright. The
// collapse of the straddle case to full exclusion is deliberate: availability
// is never split into two sub-windows.
func narrow(from, to, offStart, offEnd int) (int, int, bool) {
	switch {
	case offStart > from:
		if offStart < to {
			to = offStart
		}
	case offEnd < to:
		if offEnd > from {
			from = offEnd
		}
	default:
		return 0, 0, true
	}
	return from, to, false
}
