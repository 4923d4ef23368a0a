package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/SunitaSingh93/Albergo/internal/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, store *memstore.Store, id, roomID string, checkOut time.Time, status hotel.BookingStatus) {
	t.Helper()
	require.NoError(t, store.CreateRoom(context.Background(), &hotel.Room{
		ID: roomID, RoomNumber: roomID, Category: hotel.CategoryStandard, PriceCents: 5000,
		Status: hotel.RoomAvailable,
	}))
	require.NoError(t, store.CreateBooking(context.Background(), &hotel.Booking{
		ID: id, UserID: "u1", RoomID: roomID,
		BookingDate: checkOut.AddDate(0, 0, -2),
		CheckIn:     checkOut.AddDate(0, 0, -1),
		CheckOut:    checkOut,
		Status:      status,
	}))
	if status == hotel.StatusCancelled {
		require.NoError(t, store.CancelBooking(context.Background(), id, roomID))
	}
}

func bookingStatus(t *testing.T, store *memstore.Store, id string) hotel.BookingStatus {
	t.Helper()
	b, err := store.BookingByID(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

func roomStatus(t *testing.T, store *memstore.Store, id string) hotel.RoomStatus {
	t.Helper()
	r, err := store.RoomByID(context.Background(), id)
	require.NoError(t, err)
	return r.Status
}

func TestRunOnce(t *testing.T) {
	store := memstore.New()
	seed(t, store, "b-past", "r1", today.AddDate(0, 0, -1), hotel.StatusBooked)
	seed(t, store, "b-today", "r2", today, hotel.StatusBooked)
	seed(t, store, "b-future", "r3", today.AddDate(0, 0, 3), hotel.StatusConfirmed)

	rec := &Reconciler{Bookings: store, Now: func() time.Time { return today.Add(2 * time.Hour) }}
	require.NoError(t, rec.RunOnce(context.Background()))

	// check-out strictly before today is closed out, the room comes back
	assert.Equal(t, hotel.StatusCompleted, bookingStatus(t, store, "b-past"))
	assert.Equal(t, hotel.RoomAvailable, roomStatus(t, store, "r1"))

	// check-out today is not yet expired
	assert.Equal(t, hotel.StatusBooked, bookingStatus(t, store, "b-today"))
	assert.Equal(t, hotel.RoomNotAvailable, roomStatus(t, store, "r2"))

	assert.Equal(t, hotel.StatusConfirmed, bookingStatus(t, store, "b-future"))
	assert.Equal(t, hotel.RoomNotAvailable, roomStatus(t, store, "r3"))
}

func TestRunOnceIdempotent(t *testing.T) {
	store := memstore.New()
	seed(t, store, "b1", "r1", today.AddDate(0, 0, -1), hotel.StatusBooked)

	rec := &Reconciler{Bookings: store, Now: func() time.Time { return today }}
	require.NoError(t, rec.RunOnce(context.Background()))
	assert.Equal(t, hotel.StatusCompleted, bookingStatus(t, store, "b1"))

	// second sweep selects nothing
	sweep, err := store.CompleteExpired(context.Background(), today)
	require.NoError(t, err)
	assert.Empty(t, sweep.BookingIDs)
	require.NoError(t, rec.RunOnce(context.Background()))
	assert.Equal(t, hotel.StatusCompleted, bookingStatus(t, store, "b1"))
}

func TestRunOnceSkipsCancelled(t *testing.T) {
	store := memstore.New()
	seed(t, store, "b1", "r1", today.AddDate(0, 0, -1), hotel.StatusCancelled)

	rec := &Reconciler{Bookings: store, Now: func() time.Time { return today }}
	require.NoError(t, rec.RunOnce(context.Background()))

	// cancelled stays cancelled; its room was already released at cancel time
	assert.Equal(t, hotel.StatusCancelled, bookingStatus(t, store, "b1"))
	assert.Equal(t, hotel.RoomAvailable, roomStatus(t, store, "r1"))
}

func TestRunTicks(t *testing.T) {
	store := memstore.New()
	seed(t, store, "b1", "r1", today.AddDate(0, 0, -1), hotel.StatusBooked)

	rec := &Reconciler{
		Bookings: store,
		Interval: 10 * time.Millisecond,
		Now:      func() time.Time { return today },
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := rec.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, hotel.StatusCompleted, bookingStatus(t, store, "b1"))
	assert.Equal(t, hotel.RoomAvailable, roomStatus(t, store, "r1"))
}
