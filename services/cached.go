package services

import (
	"context"

	"room-booking/cache"
	"room-booking/models"
	"room-booking/validation"

	"go.uber.org/zap"
)

// ListCache is the subset of cache.RedisCache the decorators need.
type ListCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Flush(ctx context.Context) error
}

// CachedRooms serves List from the cache and flushes it after every write.
// Entries are keyed by cache version, read before the database, so a list
// read concurrently with a write is stored under the version the write
// retires. Cache errors are logged and never fail the request.
type CachedRooms struct {
	*RoomService
	cache  ListCache
	logger *zap.Logger
}

func NewCachedRooms(inner *RoomService, c ListCache, logger *zap.Logger) *CachedRooms {
	return &CachedRooms{RoomService: inner, cache: c, logger: logger}
}

func (s *CachedRooms) List(ctx context.Context) ([]models.Room, error) {
	version, err := s.cache.Version(ctx)
	if err != nil {
		s.logger.Warn("rooms cache version read failed", zap.Error(err))
		return s.RoomService.List(ctx)
	}
	key := cache.ListKey(cache.RoomsListKey, version)

	var rooms []models.Room
	if hit, err := s.cache.Get(ctx, key, &rooms); err != nil {
		s.logger.Warn("rooms cache read failed", zap.Error(err))
	} else if hit {
		return rooms, nil
	}

	rooms, err = s.RoomService.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, rooms); err != nil {
		s.logger.Warn("rooms cache write failed", zap.Error(err))
	}
	return rooms, nil
}

func (s *CachedRooms) Create(ctx context.Context, in validation.RoomInput) (models.Room, error) {
	room, err := s.RoomService.Create(ctx, in)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return room, err
}

func (s *CachedRooms) Replace(ctx context.Context, id uint, in validation.RoomInput) (models.Room, error) {
	room, err := s.RoomService.Replace(ctx, id, in)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return room, err
}

func (s *CachedRooms) Delete(ctx context.Context, id uint) error {
	err := s.RoomService.Delete(ctx, id)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return err
}

type CachedBookings struct {
	*BookingService
	cache  ListCache
	logger *zap.Logger
}

func NewCachedBookings(inner *BookingService, c ListCache, logger *zap.Logger) *CachedBookings {
	return &CachedBookings{BookingService: inner, cache: c, logger: logger}
}

func (s *CachedBookings) List(ctx context.Context) ([]models.Booking, error) {
	version, err := s.cache.Version(ctx)
	if err != nil {
		s.logger.Warn("bookings cache version read failed", zap.Error(err))
		return s.BookingService.List(ctx)
	}
	key := cache.ListKey(cache.BookingsListKey, version)

	var bookings []models.Booking
	if hit, err := s.cache.Get(ctx, key, &bookings); err != nil {
		s.logger.Warn("bookings cache read failed", zap.Error(err))
	} else if hit {
		return bookings, nil
	}

	bookings, err = s.BookingService.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, bookings); err != nil {
		s.logger.Warn("bookings cache write failed", zap.Error(err))
	}
	return bookings, nil
}

func (s *CachedBookings) Create(ctx context.Context, in validation.BookingInput) (models.Booking, error) {
	booking, err := s.BookingService.Create(ctx, in)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return booking, err
}

func (s *CachedBookings) Replace(ctx context.Context, id uint, in validation.BookingInput) (models.Booking, error) {
	booking, err := s.BookingService.Replace(ctx, id, in)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return booking, err
}

func (s *CachedBookings) Delete(ctx context.Context, id uint) error {
	err := s.BookingService.Delete(ctx, id)
	if err == nil {
		flush(ctx, s.cache, s.logger)
	}
	return err
}

func flush(ctx context.Context, c ListCache, logger *zap.Logger) {
	if err := c.Flush(ctx); err != nil {
		logger.Warn("list cache flush failed", zap.Error(err))
	}
}
