package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// ValidateConfig sanity-checks scheduling configuration without running the
// pipeline: requirement counts and slots, availability windows, duplicates.
func (h *Handler) ValidateConfig(c *gin.Context) {
	var input struct {
		Requirements         []models.Requirement         `json:"requirements"`
		AvailabilityPatterns []models.AvailabilityPattern `json:"availability_patterns"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	seen := make(map[string]bool)
	for _, r := range input.Requirements {
		if r.RequiredCount < 0 {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Negative required count"})
			return
		}
		if r.Slot < 0 || r.Slot >= timeslot.SlotsPerDay {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Slot out of range"})
			return
		}
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Day of week out of range"})
			return
		}
		key := fmt.Sprintf("%s/%d/%d", r.StoreID, r.DayOfWeek, r.Slot)
		if seen[key] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate requirement for one slot"})
			return
		}
		seen[key] = true
	}

	patternDays := make(map[string]bool)
	for _, p := range input.AvailabilityPatterns {
		if _, _, err := timeslot.ParseWindow(p.StartTime, p.EndTime); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid availability window for staff " + p.StaffID})
			return
		}
		key := fmt.Sprintf("%s/%d", p.StaffID, p.DayOfWeek)
		if patternDays[key] {
			// Only one pattern per staff per day-of-week is honored.
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Multiple availability patterns on one day for staff " + p.StaffID})
			return
		}
		patternDays[key] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"requirement_count": len(input.Requirements),
			"pattern_count":     len(input.AvailabilityPatterns),
		},
	})
}
