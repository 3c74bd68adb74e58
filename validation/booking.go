package validation

import (
	"context"
	"fmt"
	"slices"
	"time"

	"room-booking/models"
)

const maxCustomerNameLen = 100

// BookingInput is a booking payload that passed validation. Dates are
// calendar dates at UTC midnight.
type BookingInput struct {
	RoomID       uint
	CustomerName string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       string
}

// RoomFinder reports whether a room exists.
type RoomFinder interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Booking validates a booking payload for create and full-replace update.
func Booking(ctx context.Context, in Input, rooms RoomFinder) (BookingInput, error) {
	var (
		out  BookingInput
		errs Errors
	)

	if v, ok := in.value("room_id"); !ok {
		errs.Add("room_id", msgRequired("room_id"))
	} else if id, ok := parseID(v); !ok {
		errs.Add("room_id", msgExists("room_id"))
	} else {
		exists, err := rooms.Exists(ctx, id)
		if err != nil {
			return BookingInput{}, fmt.Errorf("check room: %w", err)
		}
		if !exists {
			errs.Add("room_id", msgExists("room_id"))
		}
		out.RoomID = id
	}

	out.CustomerName, _ = requiredString(in, &errs, "customer_name", maxCustomerNameLen)

	checkIn, checkInOK := requiredDate(in, &errs, "check_in_date")
	checkOut, checkOutOK := requiredDate(in, &errs, "check_out_date")
	if checkInOK && checkOutOK && !checkOut.After(checkIn) {
		errs.Add("check_out_date", msgAfter("check_out_date", "check_in_date"))
	}
	out.CheckInDate, out.CheckOutDate = checkIn, checkOut

	if v, ok := in.value("status"); !ok {
		errs.Add("status", msgRequired("status"))
	} else if s, ok := v.(string); !ok {
		errs.Add("status", msgString("status"))
	} else if !slices.Contains(models.BookingStatuses, s) {
		errs.Add("status", msgIn("status"))
	} else {
		out.Status = s
	}

	if err := errs.orNil(); err != nil {
		return BookingInput{}, err
	}
	return out, nil
}

func requiredDate(in Input, errs *Errors, field string) (time.Time, bool) {
	v, ok := in.value(field)
	if !ok {
		errs.Add(field, msgRequired(field))
		return time.Time{}, false
	}
	t, ok := parseDate(v)
	if !ok {
		errs.Add(field, msgDate(field))
		return time.Time{}, false
	}
	return t, true
}
