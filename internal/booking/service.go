package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/google/uuid"
)

// Service is the booking engine: it validates reservations, gates payments
// and releases rooms on cancellation. All store mutations it triggers are
// atomic inside the store layer.
type Service struct {
	Users    hotel.UserDirectory
	Rooms    hotel.RoomDirectory
	Bookings hotel.BookingStore

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateInput struct {
	UserID   string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Status   string // optional, defaults to CONFIRMED
}

// View is the read-only projection handed to the presentation layer. It
// denormalizes room category and user display name; nothing in it aliases
// store records.
type View struct {
	BookingID   string              `json:"booking_id"`
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name"`
	RoomID      string              `json:"room_id"`
	Category    hotel.Category      `json:"category,omitempty"`
	BookingDate string              `json:"booking_date"`
	CheckIn     string              `json:"check_in"`
	CheckOut    string              `json:"check_out"`
	Status      hotel.BookingStatus `json:"status"`
	Payment     *PaymentView        `json:"payment,omitempty"`
}

type PaymentView struct {
	PaymentID   string              `json:"payment_id"`
	AmountCents int64               `json:"amount_cents"`
	Method      hotel.Method        `json:"method"`
	Status      hotel.PaymentStatus `json:"status"`
	PaidAt      time.Time           `json:"paid_at"`
}

const dateLayout = "2006-01-02"

func buildView(b *hotel.Booking, u *hotel.User, cat hotel.Category) *View {
	v := &View{
		BookingID:   b.ID,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		Category:    cat,
		BookingDate: b.BookingDate.Format(dateLayout),
		CheckIn:     b.CheckIn.Format(dateLayout),
		CheckOut:    b.CheckOut.Format(dateLayout),
		Status:      b.Status,
	}
	if u != nil {
		v.UserName = u.FirstName
	}
	if b.Payment != nil {
		v.Payment = &PaymentView{
			PaymentID:   b.Payment.ID,
			AmountCents: b.Payment.AmountCents,
			Method:      b.Payment.Method,
			Status:      b.Payment.Status,
			PaidAt:      b.Payment.PaidAt,
		}
	}
	return v
}

// CreateBooking allocates a room to a reservation. The room flips to
// NOT_AVAILABLE as soon as validation passes, together with the booking
// insert; availability here is the single room flag, not a calendar of
// date ranges.
func (s *Service) CreateBooking(ctx context.Context, in CreateInput) (*View, error) {
	user, err := s.Users.UserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	room, err := s.Rooms.RoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}

	today := hotel.DateOnly(s.now())
	checkIn := hotel.DateOnly(in.CheckIn)
	checkOut := hotel.DateOnly(in.CheckOut)
	if checkIn.Before(today) {
		return nil, hotel.InvalidRequest("check-in cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, hotel.InvalidRequest("check-out must be after check-in")
	}

	status := hotel.StatusConfirmed
	if in.Status != "" {
		if status, err = hotel.ParseBookingStatus(in.Status); err != nil {
			return nil, err
		}
	}

	b := &hotel.Booking{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		RoomID:      room.ID,
		BookingDate: today,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      status,
	}
	if err := s.Bookings.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return buildView(b, user, room.Category), nil
}

// Pay attaches the one payment a booking may have and moves it to BOOKED.
// The amount must equal the room price exactly, in cents.
func (s *Service) Pay(ctx context.Context, bookingID string, amountCents int64, method, status string) (*View, error) {
	b, err := s.Bookings.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Payment != nil {
		return nil, hotel.Conflict("payment already exists for this booking")
	}

	room, err := s.Rooms.RoomByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	if amountCents != room.PriceCents {
		return nil, hotel.InvalidRequest("invalid payment amount, expected: %s", formatCents(room.PriceCents))
	}

	m, err := hotel.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	pstatus := hotel.PaymentSuccess
	if status != "" {
		if pstatus, err = hotel.ParsePaymentStatus(status); err != nil {
			return nil, err
		}
	}

	p := &hotel.Payment{
		ID:          uuid.NewString(),
		BookingID:   b.ID,
		AmountCents: amountCents,
		Method:      m,
		Status:      pstatus,
		PaidAt:      s.now().UTC(),
	}
	if err := s.Bookings.AttachPayment(ctx, p); err != nil {
		return nil, err
	}
	b.Payment = p
	b.Status = hotel.StatusBooked

	user, err := s.Users.UserByID(ctx, b.UserID)
	if err != nil {
		return nil, err
	}
	return buildView(b, user, room.Category), nil
}

// Cancel releases a booking's room early. Only the owning user may cancel;
// repeating the call re-applies CANCELLED and AVAILABLE, which is a no-op.
func (s *Service) Cancel(ctx context.Context, userID, bookingID string) (string, error) {
	b, err := s.Bookings.BookingByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b.UserID != userID {
		return "", hotel.Forbidden("booking does not belong to the specified user")
	}
	if err := s.Bookings.CancelBooking(ctx, b.ID, b.RoomID); err != nil {
		return "", err
	}
	return fmt.Sprintf("booking %s has been cancelled", bookingID), nil
}

// BookingsByUser keeps the original contract: an empty result is itself
// NotFound, not an empty list.
func (s *Service) BookingsByUser(ctx context.Context, userID string) ([]View, error) {
	user, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := s.Bookings.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, hotel.NotFound("no bookings found for this user")
	}
	out := make([]View, 0, len(list))
	for i := range list {
		out = append(out, *buildView(&list[i], user, ""))
	}
	return out, nil
}

func (s *Service) BookingByID(ctx context.Context, bookingID string) (*View, error) {
	b, err := s.Bookings.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.UserByID(ctx, b.UserID)
	if err != nil {
		return nil, err
	}
	return buildView(b, user, ""), nil
}

// formatCents renders a cent amount as a plain decimal, e.g. 10000 -> 100.00.
func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
