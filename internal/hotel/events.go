package hotel

import (
	"encoding/json"
	"time"
)

const (
	EventBookingCreated   = "BookingCreated"
	EventBookingPaid      = "BookingPaid"
	EventBookingCancelled = "BookingCancelled"
	EventBookingCompleted = "BookingCompleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // booking_id
	Payload       json.RawMessage `json:"payload"`
}

type BookingCreatedPayload struct {
	BookingID string        `json:"booking_id"`
	UserID    string        `json:"user_id"`
	RoomID    string        `json:"room_id"`
	CheckIn   string        `json:"check_in"`  // 2006-01-02
	CheckOut  string        `json:"check_out"` // 2006-01-02
	Status    BookingStatus `json:"status"`
}

type BookingPaidPayload struct {
	BookingID   string        `json:"booking_id"`
	PaymentID   string        `json:"payment_id"`
	AmountCents int64         `json:"amount_cents"`
	Method      Method        `json:"method"`
	Status      PaymentStatus `json:"status"`
}

type BookingCancelledPayload struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
}

type BookingCompletedPayload struct {
	BookingID string `json:"booking_id"`
}
