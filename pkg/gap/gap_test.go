package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/storeshift-api/pkg/models"
)

func req(slot, count int) models.Requirement {
	return models.Requirement{StoreID: "s1", DayOfWeek: 1, Slot: slot, RequiredCount: count}
}

func shift(staffID, start, end string) models.ExistingShift {
	return models.ExistingShift{StaffID: staffID, Date: "2025-06-02", StartTime: start, EndTime: end}
}

func TestAnalyzeGaps(t *testing.T) {
	t.Run("no requirements means no gaps", func(t *testing.T) {
		gaps, err := AnalyzeGaps(nil, []models.ExistingShift{shift("a", "09:00", "17:00")})
		require.NoError(t, err)
		assert.Empty(t, gaps)
	})

	t.Run("zero-count requirements never appear", func(t *testing.T) {
		gaps, err := AnalyzeGaps([]models.Requirement{req(18, 0), req(19, 0)}, nil)
		require.NoError(t, err)
		assert.Empty(t, gaps)
	})

	t.Run("shortage is required minus current", func(t *testing.T) {
		// Slot 36 is 18:00-18:30; one shift covers it.
		gaps, err := AnalyzeGaps(
			[]models.Requirement{req(36, 3)},
			[]models.ExistingShift{shift("a", "17:00", "19:00")},
		)
		require.NoError(t, err)
		require.Len(t, gaps, 1)
		assert.Equal(t, models.GapSlot{Slot: 36, Required: 3, Current: 1, Shortage: 2}, gaps[0])
	})

	t.Run("half-open accounting: shift ending at slot start does not count", func(t *testing.T) {
		// Slot 20 is 10:00-10:30.
		gaps, err := AnalyzeGaps(
			[]models.Requirement{req(20, 1)},
			[]models.ExistingShift{shift("a", "08:00", "10:00")},
		)
		require.NoError(t, err)
		require.Len(t, gaps, 1)
		assert.Equal(t, 0, gaps[0].Current)
	})

	t.Run("fully covered slots are omitted", func(t *testing.T) {
		gaps, err := AnalyzeGaps(
			[]models.Requirement{req(20, 1), req(21, 3)},
			[]models.ExistingShift{shift("a", "10:00", "11:00"), shift("b", "10:30", "11:00")},
		)
		require.NoError(t, err)
		require.Len(t, gaps, 1)
		assert.Equal(t, models.GapSlot{Slot: 21, Required: 3, Current: 2, Shortage: 1}, gaps[0])
	})

	t.Run("idempotent on identical inputs", func(t *testing.T) {
		reqs := []models.Requirement{req(18, 2), req(19, 1)}
		shifts := []models.ExistingShift{shift("a", "09:00", "09:30")}
		first, err := AnalyzeGaps(reqs, shifts)
		require.NoError(t, err)
		second, err := AnalyzeGaps(reqs, shifts)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("negative required count is an input error", func(t *testing.T) {
		_, err := AnalyzeGaps([]models.Requirement{req(10, -1)}, nil)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("inverted shift window is an input error", func(t *testing.T) {
		_, err := AnalyzeGaps([]models.Requirement{req(10, 1)},
			[]models.ExistingShift{shift("a", "22:00", "02:00")})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("duplicate slot requirement is an input error", func(t *testing.T) {
		_, err := AnalyzeGaps([]models.Requirement{req(10, 1), req(10, 2)}, nil)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestCoverageRate(t *testing.T) {
	t.Run("vacuous full coverage with nothing required", func(t *testing.T) {
		rate, err := CoverageRate(nil, []models.ExistingShift{shift("a", "09:00", "17:00")})
		require.NoError(t, err)
		assert.Equal(t, 100, rate)

		rate, err = CoverageRate([]models.Requirement{req(10, 0)}, nil)
		require.NoError(t, err)
		assert.Equal(t, 100, rate)
	})

	t.Run("partial coverage rounds to nearest integer", func(t *testing.T) {
		// Slot 18 (09:00) needs 3, has 1: 1/3 => 33%.
		rate, err := CoverageRate(
			[]models.Requirement{req(18, 3)},
			[]models.ExistingShift{shift("a", "09:00", "09:30")},
		)
		require.NoError(t, err)
		assert.Equal(t, 33, rate)

		// 2/3 => 67%.
		rate, err = CoverageRate(
			[]models.Requirement{req(18, 3)},
			[]models.ExistingShift{shift("a", "09:00", "09:30"), shift("b", "09:00", "09:30")},
		)
		require.NoError(t, err)
		assert.Equal(t, 67, rate)
	})

	t.Run("overstaffing never exceeds 100", func(t *testing.T) {
		rate, err := CoverageRate(
			[]models.Requirement{req(18, 1)},
			[]models.ExistingShift{shift("a", "09:00", "09:30"), shift("b", "09:00", "09:30")},
		)
		require.NoError(t, err)
		assert.Equal(t, 100, rate)
	})

	t.Run("adding shifts never lowers coverage", func(t *testing.T) {
		reqs := []models.Requirement{req(18, 2), req(19, 2), req(20, 1)}
		existing := []models.ExistingShift{shift("a", "09:00", "10:00")}
		before, err := CoverageRate(reqs, existing)
		require.NoError(t, err)

		augmented := append(append([]models.ExistingShift{}, existing...),
			shift("b", "09:00", "10:30"))
		after, err := CoverageRate(reqs, augmented)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after, before)
	})
}

func TestGroupConsecutiveGaps(t *testing.T) {
	t.Run("adjacent slots merge with max shortage", func(t *testing.T) {
		// 09:00, 09:30, 10:00 with shortages 1, 2, 1 => one range 09:00-10:30, max 2.
		ranges := GroupConsecutiveGaps([]models.GapSlot{
			{Slot: 18, Required: 1, Current: 0, Shortage: 1},
			{Slot: 19, Required: 2, Current: 0, Shortage: 2},
			{Slot: 20, Required: 1, Current: 0, Shortage: 1},
		})
		require.Len(t, ranges, 1)
		assert.Equal(t, models.GapRange{StartTime: "09:00", EndTime: "10:30", MaxShortage: 2}, ranges[0])
	})

	t.Run("non-adjacent gaps form separate ranges", func(t *testing.T) {
		// 09:00 and 11:00 are not adjacent.
		ranges := GroupConsecutiveGaps([]models.GapSlot{
			{Slot: 18, Required: 1, Current: 0, Shortage: 1},
			{Slot: 22, Required: 1, Current: 0, Shortage: 1},
		})
		require.Len(t, ranges, 2)
		assert.Equal(t, "09:00", ranges[0].StartTime)
		assert.Equal(t, "09:30", ranges[0].EndTime)
		assert.Equal(t, "11:00", ranges[1].StartTime)
		assert.Equal(t, "11:30", ranges[1].EndTime)
	})

	t.Run("empty input yields no ranges", func(t *testing.T) {
		assert.Empty(t, GroupConsecutiveGaps(nil))
	})

	t.Run("final slot of the day ends at wrapped midnight", func(t *testing.T) {
		ranges := GroupConsecutiveGaps([]models.GapSlot{
			{Slot: 47, Required: 1, Current: 0, Shortage: 1},
		})
		require.Len(t, ranges, 1)
		assert.Equal(t, "23:30", ranges[0].StartTime)
		assert.Equal(t, "00:00", ranges[0].EndTime)
	})
}
