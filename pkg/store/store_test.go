package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&database.StaffMember{},
		&database.SlotRequirement{},
		&database.AvailabilityPattern{},
		&database.TimeOffRequest{},
		&database.Shift{},
	))
	return New(db)
}

func TestShiftsForDay_FiltersByStoreAndDate(t *testing.T) {
	s := testDB(t)
	ctx := context.Background()

	rows := []database.Shift{
		{StoreID: "s1", Date: "2025-06-02", StaffID: "a", StaffName: "Alice", StartTime: "09:00", EndTime: "17:00"},
		{StoreID: "s1", Date: "2025-06-03", StaffID: "a", StaffName: "Alice", StartTime: "09:00", EndTime: "17:00"},
		{StoreID: "s2", Date: "2025-06-02", StaffID: "b", StaffName: "Bob", StartTime: "09:00", EndTime: "17:00"},
	}
	for i := range rows {
		require.NoError(t, s.db.Create(&rows[i]).Error)
	}

	shifts, err := s.ShiftsForDay(ctx, "s1", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "a", shifts[0].StaffID)
}

func TestCommitDay_ReplacesWholeDay(t *testing.T) {
	s := testDB(t)
	ctx := context.Background()

	old := database.Shift{StoreID: "s1", Date: "2025-06-02", StaffID: "a", StaffName: "Alice", StartTime: "09:00", EndTime: "12:00"}
	otherDay := database.Shift{StoreID: "s1", Date: "2025-06-03", StaffID: "a", StaffName: "Alice", StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, s.db.Create(&old).Error)
	require.NoError(t, s.db.Create(&otherDay).Error)

	err := s.CommitDay(ctx, "s1", "2025-06-02", []models.ProposedShift{
		{StaffID: "b", StaffName: "Bob", StartTime: "10:00", EndTime: "18:00"},
		{StaffID: "c", StaffName: "Cara", StartTime: "12:00", EndTime: "20:00"},
	})
	require.NoError(t, err)

	shifts, err := s.ShiftsForDay(ctx, "s1", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	for _, sh := range shifts {
		assert.NotEqual(t, "a", sh.StaffID, "pre-existing day shifts are replaced")
	}

	// Other days are untouched.
	other, err := s.ShiftsForDay(ctx, "s1", "2025-06-03")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCommitDay_EmptySetClearsDay(t *testing.T) {
	s := testDB(t)
	ctx := context.Background()

	row := database.Shift{StoreID: "s1", Date: "2025-06-02", StaffID: "a", StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, s.db.Create(&row).Error)

	require.NoError(t, s.CommitDay(ctx, "s1", "2025-06-02", nil))

	shifts, err := s.ShiftsForDay(ctx, "s1", "2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestAvailabilityPatterns_FilterByDay(t *testing.T) {
	s := testDB(t)
	ctx := context.Background()

	rows := []database.AvailabilityPattern{
		{StoreID: "s1", StaffID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{StoreID: "s1", StaffID: "a", DayOfWeek: 2, StartTime: "12:00", EndTime: "20:00"},
	}
	for i := range rows {
		require.NoError(t, s.db.Create(&rows[i]).Error)
	}

	patterns, err := s.AvailabilityPatterns(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "09:00", patterns[0].StartTime)
}
