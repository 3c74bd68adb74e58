package config

import (
	"fmt"
	"math/rand/v2"
	"time"

	"room-booking/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var seedRoomTypes = []string{"Standard", "Deluxe", "Suite"}

// SeedDatabase fills an empty database with 5 rooms holding 2 bookings each.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("rooms already seeded", zap.Int64("rooms", count))
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	digits := rand.Perm(10)

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 5; i++ {
			room := models.Room{
				RoomNumber:         fmt.Sprintf("10%d", digits[i]),
				Type:               seedRoomTypes[rand.IntN(len(seedRoomTypes))],
				Price:              float64(5000+rand.IntN(45001)) / 100,
				AvailabilityStatus: rand.IntN(2) == 1,
			}
			if err := tx.Create(&room).Error; err != nil {
				return fmt.Errorf("seed room %s: %w", room.RoomNumber, err)
			}

			for j := 0; j < 2; j++ {
				checkIn := today.AddDate(0, 0, rand.IntN(183))
				booking := models.Booking{
					RoomID:       room.ID,
					CustomerName: seedNames[rand.IntN(len(seedNames))],
					CheckInDate:  datatypes.Date(checkIn),
					CheckOutDate: datatypes.Date(checkIn.AddDate(0, 0, 1+rand.IntN(7))),
					Status:       models.BookingStatuses[rand.IntN(len(models.BookingStatuses))],
				}
				if err := tx.Create(&booking).Error; err != nil {
					return fmt.Errorf("seed booking for room %s: %w", room.RoomNumber, err)
				}
			}
		}
		zap.L().Info("rooms and bookings seeded")
		return nil
	})
}

var seedNames = []string{
	"Alice Nguyen", "Bob Smith", "Carla Mendes", "Daniel Okafor", "Emma Larsen",
	"Farid Haddad", "Grace Kim", "Hugo Moreau", "Ines Duarte", "Jonas Weber",
}
