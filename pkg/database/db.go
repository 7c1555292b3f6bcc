package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// StaffMember represents the staff_members table
type StaffMember struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	StoreID        string `gorm:"uniqueIndex:idx_store_staff;not null" json:"store_id"`
	StaffID        string `gorm:"uniqueIndex:idx_store_staff;not null" json:"staff_id"`
	Name           string `gorm:"not null" json:"name"`
	EmploymentType string `json:"employment_type"`
}

// SlotRequirement represents the slot_requirements table: configured
// headcount per store, day-of-week, and half-hour slot
type SlotRequirement struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	StoreID       string `gorm:"uniqueIndex:idx_req;not null" json:"store_id"`
	DayOfWeek     int    `gorm:"uniqueIndex:idx_req;not null" json:"day_of_week"`
	Slot          int    `gorm:"uniqueIndex:idx_req;not null" json:"slot"`
	RequiredCount int    `gorm:"default:0" json:"required_count"`
}

// AvailabilityPattern represents the availability_patterns table
type AvailabilityPattern struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StoreID   string `gorm:"index;not null" json:"store_id"`
	StaffID   string `gorm:"index;not null" json:"staff_id"`
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"not null" json:"start_time"`
	EndTime   string `gorm:"not null" json:"end_time"`
}

// TimeOffRequest represents the time_off_requests table. Empty start/end
// times mean a full-day absence.
type TimeOffRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"index;not null" json:"store_id"`
	StaffID   string    `gorm:"index;not null" json:"staff_id"`
	Date      string    `gorm:"index;not null" json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `gorm:"default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Shift represents the shifts table
type Shift struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"index:idx_store_date;not null" json:"store_id"`
	Date      string    `gorm:"index:idx_store_date;not null" json:"date"`
	StaffID   string    `gorm:"index;not null" json:"staff_id"`
	StaffName string    `json:"staff_name"`
	StartTime string    `gorm:"not null" json:"start_time"`
	EndTime   string    `gorm:"not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalProposals int    `gorm:"default:0" json:"total_proposals"`
	TotalCommitted int    `gorm:"default:0" json:"total_committed"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects Postgres; otherwise a local sqlite file is used.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "storeshift.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&StaffMember{},
		&SlotRequirement{},
		&AvailabilityPattern{},
		&TimeOffRequest{},
		&Shift{},
		&APIKey{},
		&APIUsage{},
		&MasterUser{},
	)

	return db
}
