package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// ExportShiftsCSV returns the committed schedule for one store date as CSV
func (h *Handler) ExportShiftsCSV(c *gin.Context) {
	storeID := c.Query("store_id")
	date := c.Query("date")
	if storeID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id and date are required"})
		return
	}

	var rows []database.Shift
	if err := h.DB.Where("store_id = ? AND date = ?", storeID, date).
		Order("start_time").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shifts"})
		return
	}

	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"staff_id", "staff_name", "date", "start", "end", "duration_minutes"})

	for _, sh := range rows {
		duration := ""
		if s, e, err := timeslot.ParseWindow(sh.StartTime, sh.EndTime); err == nil {
			duration = strconv.Itoa(e - s)
		}
		writer.Write([]string{
			sh.StaffID,
			sh.StaffName,
			sh.Date,
			sh.StartTime,
			sh.EndTime,
			duration,
		})
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}
