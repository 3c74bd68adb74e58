// Package testutil provides a migrated SQLite database and fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"room-booking/config"
	"room-booking/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewDB opens a fresh SQLite file with foreign keys enabled and the schema
// migrated. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
	}, zap.NewNop(), false)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Date returns the calendar date days from today, at UTC midnight.
func Date(days int) time.Time {
	y, m, d := time.Now().UTC().AddDate(0, 0, days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func CreateRoom(t *testing.T, db *gorm.DB, roomNumber string) models.Room {
	t.Helper()

	room := models.Room{
		RoomNumber:         roomNumber,
		Type:               "Standard",
		Price:              99.90,
		AvailabilityStatus: true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

// CreateBooking books roomID from today+checkInDays for nights nights.
func CreateBooking(t *testing.T, db *gorm.DB, roomID uint, checkInDays, nights int) models.Booking {
	t.Helper()

	booking := models.Booking{
		RoomID:       roomID,
		CustomerName: "Test Guest",
		CheckInDate:  datatypes.Date(Date(checkInDays)),
		CheckOutDate: datatypes.Date(Date(checkInDays + nights)),
		Status:       models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func CountBookings(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	return count
}
