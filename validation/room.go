package validation

import (
	"context"
	"fmt"
	"math"
)

const (
	maxRoomNumberLen = 50
	maxRoomTypeLen   = 50
)

// RoomInput is a room payload that passed validation.
type RoomInput struct {
	RoomNumber         string
	Type               string
	Price              float64
	AvailabilityStatus bool
}

// RoomNumberChecker reports whether a room number is used by a room other
// than excludeID (0 excludes nothing).
type RoomNumberChecker interface {
	RoomNumberTaken(ctx context.Context, roomNumber string, excludeID uint) (bool, error)
}

// Room validates a room payload. Create and full-replace update share the rule
// set; on update pass the room's own id as excludeID so it does not collide
// with itself. A failed validation returns *Errors; any other error comes from
// the lookup.
func Room(ctx context.Context, in Input, rooms RoomNumberChecker, excludeID uint) (RoomInput, error) {
	var (
		out  RoomInput
		errs Errors
	)

	if number, ok := requiredString(in, &errs, "room_number", maxRoomNumberLen); ok || number != "" {
		out.RoomNumber = number
		taken, err := rooms.RoomNumberTaken(ctx, number, excludeID)
		if err != nil {
			return RoomInput{}, fmt.Errorf("check room number: %w", err)
		}
		if taken {
			errs.Add("room_number", msgUnique("room_number"))
		}
	}

	out.Type, _ = requiredString(in, &errs, "type", maxRoomTypeLen)

	if v, ok := in.value("price"); !ok {
		errs.Add("price", msgRequired("price"))
	} else if price, ok := parseNumber(v); !ok {
		errs.Add("price", msgNumeric("price"))
	} else if price < 0 {
		errs.Add("price", msgMin("price", 0))
	} else {
		// stored as decimal(10,2) on every backend; round here so all agree
		out.Price = math.Round(price*100) / 100
	}

	if v, ok := in.value("availability_status"); !ok {
		errs.Add("availability_status", msgRequired("availability_status"))
	} else if status, ok := parseBool(v); !ok {
		errs.Add("availability_status", msgBoolean("availability_status"))
	} else {
		out.AvailabilityStatus = status
	}

	if err := errs.orNil(); err != nil {
		return RoomInput{}, err
	}
	return out, nil
}
