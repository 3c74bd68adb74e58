package services

import (
	"context"
	"testing"

	"room-booking/models"
	"room-booking/testutil"
	"room-booking/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomService_ListOrdersByRoomNumber(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)
	ctx := context.Background()

	for _, number := range []string{"301", "101", "205"} {
		testutil.CreateRoom(t, db, number)
	}

	rooms, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "205", rooms[1].RoomNumber)
	assert.Equal(t, "301", rooms[2].RoomNumber)
	for _, r := range rooms {
		assert.NotNil(t, r.Bookings)
		assert.Empty(t, r.Bookings)
	}
}

func TestRoomService_ListAttachesBookingsLatestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)

	room := testutil.CreateRoom(t, db, "101")
	other := testutil.CreateRoom(t, db, "102")
	early := testutil.CreateBooking(t, db, room.ID, 1, 2)
	late := testutil.CreateBooking(t, db, room.ID, 10, 2)
	testutil.CreateBooking(t, db, other.ID, 5, 1)

	rooms, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	require.Len(t, rooms[0].Bookings, 2)
	assert.Equal(t, late.ID, rooms[0].Bookings[0].ID)
	assert.Equal(t, early.ID, rooms[0].Bookings[1].ID)
	assert.Len(t, rooms[1].Bookings, 1)
}

func TestRoomService_CreateThenGetRoundTrip(t *testing.T) {
	svc := NewRoomService(testutil.NewDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validation.RoomInput{
		RoomNumber:         "101",
		Type:               "Deluxe",
		Price:              120.50,
		AvailabilityStatus: true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", got.RoomNumber)
	assert.Equal(t, "Deluxe", got.Type)
	assert.InDelta(t, 120.50, got.Price, 0.005)
	assert.True(t, got.AvailabilityStatus)
	assert.Empty(t, got.Bookings)
}

func TestRoomService_CreateDuplicateRoomNumber(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)
	testutil.CreateRoom(t, db, "101")

	_, err := svc.Create(context.Background(), validation.RoomInput{RoomNumber: "101", Type: "Suite"})
	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)
}

func TestRoomService_GetMissing(t *testing.T) {
	svc := NewRoomService(testutil.NewDB(t))

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomService_ReplaceOverwritesEveryField(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)
	room := testutil.CreateRoom(t, db, "101")

	updated, err := svc.Replace(context.Background(), room.ID, validation.RoomInput{
		RoomNumber:         "102",
		Type:               "Suite",
		Price:              250,
		AvailabilityStatus: false,
	})
	require.NoError(t, err)
	assert.Equal(t, room.ID, updated.ID)
	assert.Equal(t, "102", updated.RoomNumber)
	assert.Equal(t, "Suite", updated.Type)
	assert.InDelta(t, 250.0, updated.Price, 0.005)
	assert.False(t, updated.AvailabilityStatus)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.False(t, stored.AvailabilityStatus)
	assert.Equal(t, "102", stored.RoomNumber)
}

func TestRoomService_ReplaceMissing(t *testing.T) {
	svc := NewRoomService(testutil.NewDB(t))

	_, err := svc.Replace(context.Background(), 999, validation.RoomInput{RoomNumber: "1", Type: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomService_DeleteCascadesToBookings(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)

	room := testutil.CreateRoom(t, db, "101")
	other := testutil.CreateRoom(t, db, "102")
	testutil.CreateBooking(t, db, room.ID, 1, 2)
	testutil.CreateBooking(t, db, room.ID, 4, 2)
	testutil.CreateBooking(t, db, room.ID, 8, 1)
	kept := testutil.CreateBooking(t, db, other.ID, 1, 1)

	require.NoError(t, svc.Delete(context.Background(), room.ID))

	assert.Equal(t, int64(1), testutil.CountBookings(t, db))
	var remaining models.Booking
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, kept.ID, remaining.ID)

	_, err := svc.Get(context.Background(), room.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomService_DeleteMissing(t *testing.T) {
	svc := NewRoomService(testutil.NewDB(t))

	assert.ErrorIs(t, svc.Delete(context.Background(), 999), ErrNotFound)
}

func TestRoomService_RoomNumberTakenExcludesSelf(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)
	ctx := context.Background()
	room := testutil.CreateRoom(t, db, "101")
	other := testutil.CreateRoom(t, db, "102")

	taken, err := svc.RoomNumberTaken(ctx, "101", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.RoomNumberTaken(ctx, "101", room.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = svc.RoomNumberTaken(ctx, "101", other.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.RoomNumberTaken(ctx, "999", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRoomService_Exists(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRoomService(db)
	room := testutil.CreateRoom(t, db, "101")

	ok, err := svc.Exists(context.Background(), room.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), room.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}
