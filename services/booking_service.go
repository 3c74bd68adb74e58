package services

import (
	"context"
	"fmt"

	"room-booking/models"
	"room-booking/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService is the bookings repository.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// List returns every booking, latest check-in first, each with its room.
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Order("check_in_date DESC").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").First(&booking, id).Error; err != nil {
		return models.Booking{}, fmt.Errorf("get booking %d: %w", id, notFound(err))
	}
	return booking, nil
}

func (s *BookingService) Create(ctx context.Context, in validation.BookingInput) (models.Booking, error) {
	booking := models.Booking{}
	apply(&booking, in)
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return s.Get(ctx, booking.ID)
}

// Replace overwrites every mutable field of the booking.
func (s *BookingService) Replace(ctx context.Context, id uint, in validation.BookingInput) (models.Booking, error) {
	var booking models.Booking
	db := s.DB.WithContext(ctx)
	if err := db.First(&booking, id).Error; err != nil {
		return models.Booking{}, fmt.Errorf("replace booking %d: %w", id, notFound(err))
	}

	apply(&booking, in)
	if err := db.Omit(clause.Associations).Save(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("replace booking %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *BookingService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Booking{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete booking %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func apply(b *models.Booking, in validation.BookingInput) {
	b.RoomID = in.RoomID
	b.CustomerName = in.CustomerName
	b.CheckInDate = datatypes.Date(in.CheckInDate)
	b.CheckOutDate = datatypes.Date(in.CheckOutDate)
	b.Status = in.Status
	b.Room = nil
}
