package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"room-booking/models"
)

// Response shapes. Assembly is explicit so the public JSON does not follow
// the storage structs: prices keep two decimals, dates are calendar dates.

type roomResource struct {
	ID                 uint               `json:"id"`
	RoomNumber         string             `json:"room_number"`
	Type               string             `json:"type"`
	Price              json.Number        `json:"price"`
	AvailabilityStatus bool               `json:"availability_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Bookings           *[]bookingResource `json:"bookings,omitempty"`
}

type bookingResource struct {
	ID           uint          `json:"id"`
	RoomID       uint          `json:"room_id"`
	CustomerName string        `json:"customer_name"`
	CheckInDate  string        `json:"check_in_date"`
	CheckOutDate string        `json:"check_out_date"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Room         *roomResource `json:"room,omitempty"`
}

func formatPrice(p float64) json.Number {
	return json.Number(strconv.FormatFloat(p, 'f', 2, 64))
}

func baseRoom(r models.Room) roomResource {
	return roomResource{
		ID:                 r.ID,
		RoomNumber:         r.RoomNumber,
		Type:               r.Type,
		Price:              formatPrice(r.Price),
		AvailabilityStatus: r.AvailabilityStatus,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func baseBooking(b models.Booking) bookingResource {
	return bookingResource{
		ID:           b.ID,
		RoomID:       b.RoomID,
		CustomerName: b.CustomerName,
		CheckInDate:  time.Time(b.CheckInDate).Format(time.DateOnly),
		CheckOutDate: time.Time(b.CheckOutDate).Format(time.DateOnly),
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// newRoomResource renders a room with its bookings embedded.
func newRoomResource(r models.Room) roomResource {
	out := baseRoom(r)
	bookings := make([]bookingResource, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		bookings = append(bookings, baseBooking(b))
	}
	out.Bookings = &bookings
	return out
}

// newBookingResource renders a booking with its room embedded.
func newBookingResource(b models.Booking) bookingResource {
	out := baseBooking(b)
	if b.Room != nil {
		room := baseRoom(*b.Room)
		out.Room = &room
	}
	return out
}

func newRoomCollection(rooms []models.Room) []roomResource {
	out := make([]roomResource, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newRoomResource(r))
	}
	return out
}

func newBookingCollection(bookings []models.Booking) []bookingResource {
	out := make([]bookingResource, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResource(b))
	}
	return out
}
