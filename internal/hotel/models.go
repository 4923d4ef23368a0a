package hotel

import "time"

type Room struct {
	ID         string
	RoomNumber string
	Occupancy  string
	Category   Category
	PriceCents int64
	ImagePath  string
	Status     RoomStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Gender    string
	Role      Role
	CreatedAt time.Time
}

type Booking struct {
	ID          string
	UserID      string
	RoomID      string
	BookingDate time.Time // date the reservation was taken
	CheckIn     time.Time
	CheckOut    time.Time
	Status      BookingStatus
	Payment     *Payment // at most one, nil until paid
}

type Payment struct {
	ID          string
	BookingID   string
	AmountCents int64
	Method      Method
	Status      PaymentStatus
	PaidAt      time.Time
}

// DateOnly truncates to a calendar date at UTC midnight. Check-in/check-out
// carry no time component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
