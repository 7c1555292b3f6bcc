// Package timeslot provides the canonical half-hour scheduling grid and the
// interval arithmetic every other package builds on. All scheduling math is
// integer minutes from midnight; HH:MM strings exist only at the edges.
package timeslot

import (
	"fmt"

	"github.com/arnavshah/storeshift-api/pkg/models"
)

const (
	// SlotMinutes is the width of one scheduling slot
	SlotMinutes = 30
	// SlotsPerDay is the number of slots in a day (48 half hours)
	SlotsPerDay = 24 * 60 / SlotMinutes
	// MinutesPerDay is the scheduling horizon of a single day
	MinutesPerDay = 24 * 60
)

// TimeToMinutes parses a zero-padded 24-hour "HH:MM" string into minutes
// from midnight. Anything else is an input error.
func TimeToMinutes(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: bad time %q", models.ErrInvalidInput, t)
	}
	h, okH := twoDigits(t[0], t[1])
	m, okM := twoDigits(t[3], t[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: bad time %q", models.ErrInvalidInput, t)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// MinutesToTime formats minutes from midnight as "HH:MM". Exactly 24:00
// wraps to "00:00"; that wrap is for display only and must never feed back
// into scheduling math.
func MinutesToTime(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not count.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// SlotStart returns the minute-of-day at which slot i begins
func SlotStart(slot int) int {
	return slot * SlotMinutes
}

// ParseWindow parses a start/end pair and enforces start < end. An end at or
// before the start (including would-be cross-midnight windows) is rejected.
func ParseWindow(start, end string) (int, int, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, fmt.Errorf("%w: window %s-%s is inverted or empty", models.ErrInvalidInput, start, end)
	}
	return s, e, nil
}
