package hotel

import (
	"context"
	"time"
)

// Stores return taxonomy errors (NotFound, Conflict) for absent or duplicate
// records; anything else is a store failure and aborts the operation.

// UserDirectory is read-only to the booking engine.
type UserDirectory interface {
	UserByID(ctx context.Context, id string) (*User, error)
}

type RoomDirectory interface {
	RoomByID(ctx context.Context, id string) (*Room, error)
	RoomByNumber(ctx context.Context, number string) (*Room, error)
	CreateRoom(ctx context.Context, room *Room) error
	UpdateRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]Room, error)
	RoomsByCategory(ctx context.Context, cat Category) ([]Room, error)
}

// Sweep reports what a reconciliation pass closed out.
type Sweep struct {
	BookingIDs []string
	RoomIDs    []string // distinct rooms released back to AVAILABLE
}

// BookingStore owns bookings and their payments. Composite methods are
// atomic: the implementation commits all listed mutations together or none.
type BookingStore interface {
	// CreateBooking inserts the booking and marks its room NOT_AVAILABLE
	// in the same transaction.
	CreateBooking(ctx context.Context, b *Booking) error

	BookingByID(ctx context.Context, id string) (*Booking, error)
	BookingsByUser(ctx context.Context, userID string) ([]Booking, error)

	// AttachPayment inserts the payment and moves the booking to BOOKED.
	// Conflict if the booking already has a payment.
	AttachPayment(ctx context.Context, p *Payment) error

	// CancelBooking moves the booking to CANCELLED and its room back to
	// AVAILABLE. Re-applying the same status on repeat calls is a no-op.
	CancelBooking(ctx context.Context, bookingID, roomID string) error

	// CompleteExpired closes every active booking whose check-out is
	// strictly before the cutoff and releases the rooms they held.
	CompleteExpired(ctx context.Context, before time.Time) (Sweep, error)
}
