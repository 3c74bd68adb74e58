package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
)

// BookingStatuses lists the accepted values of Booking.Status.
var BookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusCanceled}

type Booking struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RoomID       uint           `gorm:"column:room_id;index;not null" json:"room_id"`
	CustomerName string         `gorm:"column:customer_name;type:varchar(100);not null" json:"customer_name"`
	CheckInDate  datatypes.Date `gorm:"column:check_in_date;index;not null" json:"check_in_date"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date;not null" json:"check_out_date"`
	Status       string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Deleting the room removes its bookings in the database itself.
	Room *Room `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"room,omitempty"`
}
