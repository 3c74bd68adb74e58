package controllers

import (
	"context"
	"net/http"

	"room-booking/models"
	"room-booking/utils"
	"room-booking/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingStore is the bookings repository as the controller uses it.
type BookingStore interface {
	List(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (models.Booking, error)
	Create(ctx context.Context, in validation.BookingInput) (models.Booking, error)
	Replace(ctx context.Context, id uint, in validation.BookingInput) (models.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type BookingController struct {
	Bookings BookingStore
	Rooms    validation.RoomFinder
}

func NewBookingController(bookings BookingStore, rooms validation.RoomFinder) *BookingController {
	return &BookingController{Bookings: bookings, Rooms: rooms}
}

// GetBookings (GET /api/bookings)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list bookings")
		return
	}
	utils.JSONData(c, http.StatusOK, newBookingCollection(bookings))
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()
	in, ok := readInput(c)
	if !ok {
		return
	}

	input, err := validation.Booking(ctx, in, ctrl.Rooms)
	if err != nil {
		respondError(c, err, "validate booking")
		return
	}

	booking, err := ctrl.Bookings.Create(ctx, input)
	if err != nil {
		respondError(c, err, "create booking")
		return
	}

	getLogger(c).Info("booking created", zap.Uint("booking_id", booking.ID), zap.Uint("room_id", booking.RoomID))
	utils.JSONDataMessage(c, http.StatusCreated, newBookingResource(booking), "Booking created successfully.")
}

// GetBooking (GET /api/bookings/:id)
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}

	booking, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get booking")
		return
	}
	utils.JSONData(c, http.StatusOK, newBookingResource(booking))
}

// UpdateBooking (PUT /api/bookings/:id)
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}
	if _, err := ctrl.Bookings.Get(ctx, id); err != nil {
		respondError(c, err, "get booking")
		return
	}

	in, ok := readInput(c)
	if !ok {
		return
	}
	input, err := validation.Booking(ctx, in, ctrl.Rooms)
	if err != nil {
		respondError(c, err, "validate booking")
		return
	}

	booking, err := ctrl.Bookings.Replace(ctx, id, input)
	if err != nil {
		respondError(c, err, "update booking")
		return
	}

	getLogger(c).Info("booking updated", zap.Uint("booking_id", booking.ID))
	utils.JSONDataMessage(c, http.StatusOK, newBookingResource(booking), "Booking updated successfully.")
}

// DeleteBooking (DELETE /api/bookings/:id)
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}

	if err := ctrl.Bookings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete booking")
		return
	}

	getLogger(c).Info("booking deleted", zap.Uint("booking_id", id))
	c.Status(http.StatusNoContent)
}
