package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/timeslot"
)

// Record editors feeding the proposal engine. All list endpoints filter by
// the store_id query parameter.

// ListStaff returns a store's roster
func (h *Handler) ListStaff(c *gin.Context) {
	var rows []database.StaffMember
	h.DB.Where("store_id = ?", c.Query("store_id")).Find(&rows)
	c.JSON(http.StatusOK, gin.H{"staff": rows})
}

// CreateStaff adds a roster member
func (h *Handler) CreateStaff(c *gin.Context) {
	var row database.StaffMember
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if row.StoreID == "" || row.StaffID == "" || row.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id, staff_id and name are required"})
		return
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create staff member"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteStaff removes a roster member
func (h *Handler) DeleteStaff(c *gin.Context) {
	if err := h.DB.Delete(&database.StaffMember{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete staff member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}

// ListRequirements returns the configured slot requirements for a store
func (h *Handler) ListRequirements(c *gin.Context) {
	var rows []database.SlotRequirement
	h.DB.Where("store_id = ?", c.Query("store_id")).Order("day_of_week, slot").Find(&rows)
	c.JSON(http.StatusOK, gin.H{"requirements": rows})
}

// PutRequirement upserts the required headcount for one slot
func (h *Handler) PutRequirement(c *gin.Context) {
	var row database.SlotRequirement
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if row.StoreID == "" || row.DayOfWeek < 0 || row.DayOfWeek > 6 ||
		row.Slot < 0 || row.Slot >= timeslot.SlotsPerDay || row.RequiredCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requirement"})
		return
	}

	var existing database.SlotRequirement
	err := h.DB.Where("store_id = ? AND day_of_week = ? AND slot = ?",
		row.StoreID, row.DayOfWeek, row.Slot).First(&existing).Error
	if err == nil {
		h.DB.Model(&existing).Update("required_count", row.RequiredCount)
		c.JSON(http.StatusOK, existing)
		return
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save requirement"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// ListAvailability returns a store's weekly availability patterns
func (h *Handler) ListAvailability(c *gin.Context) {
	var rows []database.AvailabilityPattern
	h.DB.Where("store_id = ?", c.Query("store_id")).Order("staff_id, day_of_week").Find(&rows)
	c.JSON(http.StatusOK, gin.H{"patterns": rows})
}

// CreateAvailability adds a weekly availability window
func (h *Handler) CreateAvailability(c *gin.Context) {
	var row database.AvailabilityPattern
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if row.StoreID == "" || row.StaffID == "" || row.DayOfWeek < 0 || row.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id, staff_id and day_of_week are required"})
		return
	}
	if _, _, err := timeslot.ParseWindow(row.StartTime, row.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create availability pattern"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteAvailability removes a weekly availability window
func (h *Handler) DeleteAvailability(c *gin.Context) {
	if err := h.DB.Delete(&database.AvailabilityPattern{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete availability pattern"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability pattern deleted"})
}

// ListTimeOff returns a store's time-off requests
func (h *Handler) ListTimeOff(c *gin.Context) {
	var rows []database.TimeOffRequest
	q := h.DB.Where("store_id = ?", c.Query("store_id"))
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	q.Order("date").Find(&rows)
	c.JSON(http.StatusOK, gin.H{"time_off": rows})
}

// CreateTimeOff files a time-off request. It starts pending; only approved
// requests affect proposals. Start/end must be both set (partial day) or
// both empty (full day).
func (h *Handler) CreateTimeOff(c *gin.Context) {
	var row database.TimeOffRequest
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if row.StoreID == "" || row.StaffID == "" || row.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id, staff_id and date are required"})
		return
	}
	if row.StartTime != "" || row.EndTime != "" {
		if _, _, err := timeslot.ParseWindow(row.StartTime, row.EndTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	row.Status = models.TimeOffPending
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create time-off request"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// UpdateTimeOffStatus approves or rejects a time-off request
func (h *Handler) UpdateTimeOffStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.TimeOffApproved && req.Status != models.TimeOffRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}
	if err := h.DB.Model(&database.TimeOffRequest{}).
		Where("id = ?", c.Param("id")).
		Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update time-off request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time-off request updated"})
}

// ListShifts returns the committed shifts for a store date
func (h *Handler) ListShifts(c *gin.Context) {
	var rows []database.Shift
	q := h.DB.Where("store_id = ?", c.Query("store_id"))
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	q.Order("date, start_time").Find(&rows)
	c.JSON(http.StatusOK, gin.H{"shifts": rows})
}

// CreateShift adds a single shift directly (manual assignment)
func (h *Handler) CreateShift(c *gin.Context) {
	var row database.Shift
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if row.StoreID == "" || row.StaffID == "" || row.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id, staff_id and date are required"})
		return
	}
	if _, _, err := timeslot.ParseWindow(row.StartTime, row.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create shift"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteShift removes a single shift
func (h *Handler) DeleteShift(c *gin.Context) {
	if err := h.DB.Delete(&database.Shift{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}
