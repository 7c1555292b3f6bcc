// Package store backs the engine's read collaborators and the commit
// collaborator with the gorm schema in pkg/database.
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/models"
)

// DB implements the engine's Store interface plus the day-commit operation
type DB struct {
	db *gorm.DB
}

// New wraps a gorm connection
func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Roster returns every staff member of a store
func (s *DB) Roster(ctx context.Context, storeID string) ([]models.Staff, error) {
	var rows []database.StaffMember
	if err := s.db.WithContext(ctx).Where("store_id = ?", storeID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Staff, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Staff{
			ID:             r.StaffID,
			Name:           r.Name,
			EmploymentType: r.EmploymentType,
		})
	}
	return out, nil
}

// Requirements returns the configured slot requirements for one day-of-week
func (s *DB) Requirements(ctx context.Context, storeID string, dayOfWeek int) ([]models.Requirement, error) {
	var rows []database.SlotRequirement
	if err := s.db.WithContext(ctx).
		Where("store_id = ? AND day_of_week = ?", storeID, dayOfWeek).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Requirement, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Requirement{
			StoreID:       r.StoreID,
			DayOfWeek:     r.DayOfWeek,
			Slot:          r.Slot,
			RequiredCount: r.RequiredCount,
		})
	}
	return out, nil
}

// AvailabilityPatterns returns the weekly availability windows matching one
// day-of-week
func (s *DB) AvailabilityPatterns(ctx context.Context, storeID string, dayOfWeek int) ([]models.AvailabilityPattern, error) {
	var rows []database.AvailabilityPattern
	if err := s.db.WithContext(ctx).
		Where("store_id = ? AND day_of_week = ?", storeID, dayOfWeek).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.AvailabilityPattern, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.AvailabilityPattern{
			StaffID:   r.StaffID,
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return out, nil
}

// TimeOffRequests returns every time-off request for one store date,
// whatever its status; the resolver filters to approved ones.
func (s *DB) TimeOffRequests(ctx context.Context, storeID, date string) ([]models.TimeOffRequest, error) {
	var rows []database.TimeOffRequest
	if err := s.db.WithContext(ctx).
		Where("store_id = ? AND date = ?", storeID, date).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.TimeOffRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TimeOffRequest{
			StaffID:   r.StaffID,
			Date:      r.Date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
		})
	}
	return out, nil
}

// ShiftsForDay returns the committed shifts for one store date
func (s *DB) ShiftsForDay(ctx context.Context, storeID, date string) ([]models.ExistingShift, error) {
	var rows []database.Shift
	if err := s.db.WithContext(ctx).
		Where("store_id = ? AND date = ?", storeID, date).
		Order("start_time").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.ExistingShift, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ExistingShift{
			StaffID:   r.StaffID,
			StaffName: r.StaffName,
			Date:      r.Date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return out, nil
}

// CommitDay atomically replaces the schedule for one store date: delete all
// shifts for the day, insert the given set, in one transaction. Concurrent
// commits for the same day therefore never interleave partial deletes and
// inserts.
func (s *DB) CommitDay(ctx context.Context, storeID, date string, shifts []models.ProposedShift) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ? AND date = ?", storeID, date).
			Delete(&database.Shift{}).Error; err != nil {
			return err
		}
		for _, sh := range shifts {
			row := database.Shift{
				StoreID:   storeID,
				Date:      date,
				StaffID:   sh.StaffID,
				StaffName: sh.StaffName,
				StartTime: sh.StartTime,
				EndTime:   sh.EndTime,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
