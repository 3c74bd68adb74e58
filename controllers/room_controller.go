package controllers

import (
	"context"
	"errors"
	"net/http"

	"room-booking/models"
	"room-booking/services"
	"room-booking/utils"
	"room-booking/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomStore is the rooms repository as the controller uses it.
type RoomStore interface {
	validation.RoomNumberChecker
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id uint) (models.Room, error)
	Create(ctx context.Context, in validation.RoomInput) (models.Room, error)
	Replace(ctx context.Context, id uint, in validation.RoomInput) (models.Room, error)
	Delete(ctx context.Context, id uint) error
}

type RoomController struct {
	Rooms RoomStore
}

func NewRoomController(rooms RoomStore) *RoomController {
	return &RoomController{Rooms: rooms}
}

// GetRooms (GET /api/rooms)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list rooms")
		return
	}
	utils.JSONData(c, http.StatusOK, newRoomCollection(rooms))
}

// CreateRoom (POST /api/rooms)
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	ctx := c.Request.Context()
	in, ok := readInput(c)
	if !ok {
		return
	}

	input, err := validation.Room(ctx, in, ctrl.Rooms, 0)
	if err != nil {
		respondError(c, err, "validate room")
		return
	}

	room, err := ctrl.Rooms.Create(ctx, input)
	if err != nil {
		respondError(c, duplicateAsValidation(err), "create room")
		return
	}

	getLogger(c).Info("room created", zap.Uint("room_id", room.ID), zap.String("room_number", room.RoomNumber))
	utils.JSONDataMessage(c, http.StatusCreated, newRoomResource(room), "Room created successfully.")
}

// GetRoom (GET /api/rooms/:id)
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}

	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get room")
		return
	}
	utils.JSONData(c, http.StatusOK, newRoomResource(room))
}

// UpdateRoom (PUT /api/rooms/:id) replaces every field. The room must exist
// before the payload is validated.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}
	if _, err := ctrl.Rooms.Get(ctx, id); err != nil {
		respondError(c, err, "get room")
		return
	}

	in, ok := readInput(c)
	if !ok {
		return
	}
	input, err := validation.Room(ctx, in, ctrl.Rooms, id)
	if err != nil {
		respondError(c, err, "validate room")
		return
	}

	room, err := ctrl.Rooms.Replace(ctx, id, input)
	if err != nil {
		respondError(c, duplicateAsValidation(err), "update room")
		return
	}

	getLogger(c).Info("room updated", zap.Uint("room_id", room.ID))
	utils.JSONDataMessage(c, http.StatusOK, newRoomResource(room), "Room updated successfully.")
}

// DeleteRoom (DELETE /api/rooms/:id) also removes the room's bookings.
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		utils.JSONNotFound(c)
		return
	}

	if err := ctrl.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete room")
		return
	}

	getLogger(c).Info("room deleted", zap.Uint("room_id", id))
	c.Status(http.StatusNoContent)
}

// duplicateAsValidation turns a unique index violation that slipped past the
// uniqueness check (a concurrent insert) into the same 422 the check gives.
func duplicateAsValidation(err error) error {
	if !errors.Is(err, services.ErrDuplicateRoomNumber) {
		return err
	}
	var errs validation.Errors
	errs.Add("room_number", "The room number has already been taken.")
	return &errs
}
