package services

import (
	"context"
	"fmt"

	"room-booking/models"
	"room-booking/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomService is the rooms repository, a wrapper around *gorm.DB.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// List returns every room ordered by room number, each with its bookings.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if err := s.attachBookings(ctx, rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Get returns the room with its bookings, or ErrNotFound.
func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		return models.Room{}, fmt.Errorf("get room %d: %w", id, notFound(err))
	}
	rooms := []models.Room{room}
	if err := s.attachBookings(ctx, rooms); err != nil {
		return models.Room{}, err
	}
	return rooms[0], nil
}

func (s *RoomService) Create(ctx context.Context, in validation.RoomInput) (models.Room, error) {
	room := models.Room{
		RoomNumber:         in.RoomNumber,
		Type:               in.Type,
		Price:              in.Price,
		AvailabilityStatus: in.AvailabilityStatus,
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, ErrDuplicateRoomNumber
		}
		return models.Room{}, fmt.Errorf("create room: %w", err)
	}
	return s.Get(ctx, room.ID)
}

// Replace overwrites every mutable field of the room.
func (s *RoomService) Replace(ctx context.Context, id uint, in validation.RoomInput) (models.Room, error) {
	var room models.Room
	db := s.DB.WithContext(ctx)
	if err := db.First(&room, id).Error; err != nil {
		return models.Room{}, fmt.Errorf("replace room %d: %w", id, notFound(err))
	}

	room.RoomNumber = in.RoomNumber
	room.Type = in.Type
	room.Price = in.Price
	room.AvailabilityStatus = in.AvailabilityStatus

	if err := db.Omit(clause.Associations).Save(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, ErrDuplicateRoomNumber
		}
		return models.Room{}, fmt.Errorf("replace room %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Delete removes the room; the foreign key cascade removes its bookings.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RoomService) RoomNumberTaken(ctx context.Context, roomNumber string, excludeID uint) (bool, error) {
	q := s.DB.WithContext(ctx).Model(&models.Room{}).Where("room_number = ?", roomNumber)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RoomService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// attachBookings loads the bookings of all given rooms in one query.
func (s *RoomService) attachBookings(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	ids := make([]uint, len(rooms))
	for i := range rooms {
		ids[i] = rooms[i].ID
	}

	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Where("room_id IN ?", ids).
		Order("check_in_date DESC").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return fmt.Errorf("load room bookings: %w", err)
	}

	byRoom := make(map[uint][]models.Booking, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	for i := range rooms {
		rooms[i].Bookings = byRoom[rooms[i].ID]
		if rooms[i].Bookings == nil {
			rooms[i].Bookings = []models.Booking{}
		}
	}
	return nil
}
