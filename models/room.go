package models

import "time"

// Room is a bookable room. Its bookings are not a gorm association: the
// foreign key lives on Booking.Room and the repository attaches them.
type Room struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RoomNumber         string    `gorm:"column:room_number;type:varchar(50);uniqueIndex;not null" json:"room_number"`
	Type               string    `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Price              float64   `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	AvailabilityStatus bool      `gorm:"column:availability_status;not null" json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Bookings []Booking `gorm:"-" json:"bookings,omitempty"`
}
