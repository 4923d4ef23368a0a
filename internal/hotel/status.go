package hotel

import "strings"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusBooked    BookingStatus = "BOOKED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

var validNext = map[BookingStatus]map[BookingStatus]bool{
	StatusConfirmed: {StatusBooked: true, StatusCancelled: true, StatusCompleted: true},
	StatusBooked:    {StatusCancelled: true, StatusCompleted: true},
	StatusCancelled: {},
	StatusCompleted: {},
}

func CanTransition(from, to BookingStatus) bool {
	return validNext[from][to]
}

// Terminal states never leave the map above.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch v := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); v {
	case StatusConfirmed, StatusBooked, StatusCancelled, StatusCompleted:
		return v, nil
	default:
		return "", InvalidRequest("invalid booking status: %q", s)
	}
}

type RoomStatus string

const (
	RoomAvailable    RoomStatus = "AVAILABLE"
	RoomNotAvailable RoomStatus = "NOT_AVAILABLE"
)

type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategoryDeluxe   Category = "DELUXE"
	CategorySuite    Category = "SUITE"
)

func ParseCategory(s string) (Category, error) {
	switch v := Category(strings.ToUpper(strings.TrimSpace(s))); v {
	case CategoryStandard, CategoryDeluxe, CategorySuite:
		return v, nil
	default:
		return "", InvalidRequest("invalid category %q, allowed: STANDARD, DELUXE, SUITE", s)
	}
}

type Method string

const (
	MethodCash Method = "CASH"
	MethodCard Method = "CARD"
	MethodUPI  Method = "UPI"
)

func ParseMethod(s string) (Method, error) {
	switch v := Method(strings.ToUpper(strings.TrimSpace(s))); v {
	case MethodCash, MethodCard, MethodUPI:
		return v, nil
	default:
		return "", InvalidRequest("invalid payment method: %q", s)
	}
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentPending PaymentStatus = "PENDING"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch v := PaymentStatus(strings.ToUpper(strings.TrimSpace(s))); v {
	case PaymentSuccess, PaymentFailed, PaymentPending:
		return v, nil
	default:
		return "", InvalidRequest("invalid payment status: %q", s)
	}
}

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleCustomer     Role = "CUSTOMER"
)
