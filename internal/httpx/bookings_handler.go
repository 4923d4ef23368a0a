package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/booking"
	"github.com/SunitaSingh93/Albergo/internal/hotel"
	kafkax "github.com/SunitaSingh93/Albergo/internal/kafka"
	"github.com/SunitaSingh93/Albergo/internal/reconcile"
	"github.com/SunitaSingh93/Albergo/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type BookingsHandler struct {
	Engine     *booking.Service
	Reconciler *reconcile.Reconciler
	Redis      *redis.Client    // optional status cache
	Producer   *kafkax.Producer // optional event publishing
	Service    string
	Validate   *validator.Validate
}

type CreateBookingReq struct {
	UserID   string `json:"user_id" validate:"required"`
	RoomID   string `json:"room_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status"`
}

type PayReq struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method" validate:"required"`
	Status      string `json:"status"`
}

func (h *BookingsHandler) Register(r *chi.Mux) {
	r.Post("/bookings", h.createBooking)
	r.Get("/bookings/{id}", h.getBooking)
	r.Get("/bookings/{id}/status", h.getBookingStatus)
	r.Post("/bookings/{id}/payment", h.pay)
	r.Get("/users/{id}/bookings", h.listUserBookings)
	r.Delete("/users/{userID}/bookings/{bookingID}", h.cancel)
	r.Post("/reconcile", h.reconcile)
}

const dateLayout = "2006-01-02"

func (h *BookingsHandler) createBooking(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[CreateBookingReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}
	checkIn, _ := time.Parse(dateLayout, req.CheckIn)
	checkOut, _ := time.Parse(dateLayout, req.CheckOut)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view, err := h.Engine.CreateBooking(ctx, booking.CreateInput{
		UserID:   req.UserID,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheStatus(ctx, view.BookingID, view.Status)
	h.publish(r, hotel.TopicBookingCreated, hotel.EventBookingCreated, view.BookingID,
		hotel.BookingCreatedPayload{
			BookingID: view.BookingID,
			UserID:    view.UserID,
			RoomID:    view.RoomID,
			CheckIn:   view.CheckIn,
			CheckOut:  view.CheckOut,
			Status:    view.Status,
		})
	writeJSON(w, http.StatusCreated, view)
}

func (h *BookingsHandler) pay(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	req, err := decodeJSON[PayReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view, err := h.Engine.Pay(ctx, bookingID, req.AmountCents, req.Method, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheStatus(ctx, view.BookingID, view.Status)
	h.publish(r, hotel.TopicBookingPaid, hotel.EventBookingPaid, view.BookingID,
		hotel.BookingPaidPayload{
			BookingID:   view.BookingID,
			PaymentID:   view.Payment.PaymentID,
			AmountCents: view.Payment.AmountCents,
			Method:      view.Payment.Method,
			Status:      view.Payment.Status,
		})
	writeJSON(w, http.StatusOK, view)
}

func (h *BookingsHandler) cancel(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	bookingID := chi.URLParam(r, "bookingID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msg, err := h.Engine.Cancel(ctx, userID, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheStatus(ctx, bookingID, hotel.StatusCancelled)
	if view, err := h.Engine.BookingByID(ctx, bookingID); err == nil {
		h.publish(r, hotel.TopicBookingCancelled, hotel.EventBookingCancelled, bookingID,
			hotel.BookingCancelledPayload{
				BookingID: bookingID,
				UserID:    view.UserID,
				RoomID:    view.RoomID,
			})
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *BookingsHandler) getBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	view, err := h.Engine.BookingByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// getBookingStatus serves from the redis cache when it can and falls back to
// the store.
func (h *BookingsHandler) getBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyBookingStatus, bookingID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	view, err := h.Engine.BookingByID(ctx, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(ctx, bookingID, view.Status)
	writeJSON(w, http.StatusOK, map[string]hotel.BookingStatus{"status": view.Status})
}

func (h *BookingsHandler) listUserBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	views, err := h.Engine.BookingsByUser(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *BookingsHandler) reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.Reconciler.RunOnce(ctx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}

func (h *BookingsHandler) cacheStatus(ctx context.Context, bookingID string, status hotel.BookingStatus) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyBookingStatus, bookingID)
	_ = h.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), redisx.TTLStatusCache).Err()
}

func (h *BookingsHandler) publish(r *http.Request, topic, eventType, bookingID string, payload any) {
	if h.Producer == nil {
		return
	}
	ev := hotel.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: bookingID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(topic, hotel.PartitionKey(bookingID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
