// Package gap measures staffing shortfall per half-hour slot against the
// configured requirements for a store day.
package gap

import (
	"fmt"
	"math"

	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// requiredBySlot folds requirement rows into a per-slot array. Slots with no
// configured requirement require zero staff, not "unknown".
func requiredBySlot(reqs []models.Requirement) ([timeslot.SlotsPerDay]int, error) {
	var required [timeslot.SlotsPerDay]int
	var seen [timeslot.SlotsPerDay]bool
	for _, r := range reqs {
		if r.Slot < 0 || r.Slot >= timeslot.SlotsPerDay {
			return required, fmt.Errorf("%w: slot %d out of range", models.ErrInvalidInput, r.Slot)
		}
		if r.RequiredCount < 0 {
			return required, fmt.Errorf("%w: negative required count %d for slot %d", models.ErrInvalidInput, r.RequiredCount, r.Slot)
		}
		if seen[r.Slot] {
			return required, fmt.Errorf("%w: duplicate requirement for slot %d", models.ErrInvalidInput, r.Slot)
		}
		seen[r.Slot] = true
		required[r.Slot] = r.RequiredCount
	}
	return required, nil
}

// currentBySlot counts, per slot, the shifts whose half-open interval
// overlaps it. A shift ending exactly at a slot's start does not count.
func currentBySlot(shifts []models.ExistingShift) ([timeslot.SlotsPerDay]int, error) {
	var current [timeslot.SlotsPerDay]int
	for _, sh := range shifts {
		s, e, err := timeslot.ParseWindow(sh.StartTime, sh.EndTime)
		if err != nil {
			return current, fmt.Errorf("shift for staff %s: %w", sh.StaffID, err)
		}
		for slot := 0; slot < timeslot.SlotsPerDay; slot++ {
			ss := timeslot.SlotStart(slot)
			if timeslot.Overlaps(s, e, ss, ss+timeslot.SlotMinutes) {
				current[slot]++
			}
		}
	}
	return current, nil
}

// AnalyzeGaps returns the under-staffed slots for one store day, in slot
// order. Slots where required is zero or met never appear. Pure function:
// identical inputs always yield identical output.
func AnalyzeGaps(reqs []models.Requirement, shifts []models.ExistingShift) ([]models.GapSlot, error) {
	required, err := requiredBySlot(reqs)
	if err != nil {
		return nil, err
	}
	current, err := currentBySlot(shifts)
	if err != nil {
		return nil, err
	}

	var gaps []models.GapSlot
	for slot := 0; slot < timeslot.SlotsPerDay; slot++ {
		if shortage := required[slot] - current[slot]; shortage > 0 {
			gaps = append(gaps, models.GapSlot{
				Slot:     slot,
				Required: required[slot],
				Current:  current[slot],
				Shortage: shortage,
			})
		}
	}
	return gaps, nil
}

// CoverageRate returns the percentage of required staffing actually met,
// aggregated over all slots with a nonzero requirement and rounded to the
// nearest integer. With nothing required, coverage is vacuously 100.
func CoverageRate(reqs []models.Requirement, shifts []models.ExistingShift) (int, error) {
	required, err := requiredBySlot(reqs)
	if err != nil {
		return 0, err
	}
	current, err := currentBySlot(shifts)
	if err != nil {
		return 0, err
	}

	total, met := 0, 0
	for slot := 0; slot < timeslot.SlotsPerDay; slot++ {
		if required[slot] == 0 {
			continue
		}
		total += required[slot]
		if current[slot] < required[slot] {
			met += current[slot]
		} else {
			met += required[slot]
		}
	}
	if total == 0 {
		return 100, nil
	}
	return int(math.Round(float64(met) * 100 / float64(total))), nil
}

// GroupConsecutiveGaps merges gap slots that are exactly one slot apart into
// reporting ranges carrying the worst shortage of the run. Isolated gaps
// become singleton ranges. Input must be in slot order, as AnalyzeGaps emits.
func GroupConsecutiveGaps(gaps []models.GapSlot) []models.GapRange {
	if len(gaps) == 0 {
		return nil
	}

	var ranges []models.GapRange
	start := gaps[0].Slot
	last := gaps[0].Slot
	maxShortage := gaps[0].Shortage

	flush := func() {
		ranges = append(ranges, models.GapRange{
			StartTime:   timeslot.MinutesToTime(timeslot.SlotStart(start)),
			EndTime:     timeslot.MinutesToTime(timeslot.SlotStart(last) + timeslot.SlotMinutes),
			MaxShortage: maxShortage,
		})
	}

	for _, g := range gaps[1:] {
		if g.Slot == last+1 {
			last = g.Slot
			if g.Shortage > maxShortage {
				maxShortage = g.Shortage
			}
			continue
		}
		flush()
		start, last, maxShortage = g.Slot, g.Slot, g.Shortage
	}
	flush()
	return ranges
}
