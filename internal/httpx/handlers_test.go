package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/booking"
	"github.com/SunitaSingh93/Albergo/internal/gateway"
	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/SunitaSingh93/Albergo/internal/memstore"
	"github.com/SunitaSingh93/Albergo/internal/reconcile"
	"github.com/SunitaSingh93/Albergo/internal/rooms"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*chi.Mux, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.PutUser(hotel.User{ID: "u1", FirstName: "Sunita", LastName: "Singh", Email: "sunita@example.com", Role: hotel.RoleCustomer})
	store.PutUser(hotel.User{ID: "u2", FirstName: "Rahul", Role: hotel.RoleCustomer})
	require.NoError(t, store.CreateRoom(context.Background(), &hotel.Room{
		ID: "r101", RoomNumber: "101", Occupancy: "2 adults",
		Category: hotel.CategoryDeluxe, PriceCents: 10000, Status: hotel.RoomAvailable,
	}))

	now := func() time.Time { return today.Add(10 * time.Hour) }
	engine := &booking.Service{Users: store, Rooms: store, Bookings: store, Now: now}
	roomSvc := &rooms.Service{Rooms: store}
	rec := &reconcile.Reconciler{Bookings: store, Now: now}

	validate := validator.New()
	router := NewRouter()
	(&BookingsHandler{Engine: engine, Reconciler: rec, Service: "test-api", Validate: validate}).Register(router)
	(&RoomsHandler{Rooms: roomSvc, Users: store, Validate: validate}).Register(router)
	(&PaymentsHandler{Gateway: &gateway.Stub{Rand: func() float64 { return 1.0 }}, Rooms: roomSvc, Validate: validate}).Register(router)
	return router, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func createBooking(t *testing.T, router http.Handler) booking.View {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/bookings", map[string]any{
		"user_id": "u1", "room_id": "r101",
		"check_in": "2026-09-02", "check_out": "2026-09-03",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[booking.View](t, w)
}

func TestCreateBookingEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	view := createBooking(t, router)
	assert.Equal(t, hotel.StatusConfirmed, view.Status)
	assert.Equal(t, "Sunita", view.UserName)
	assert.Equal(t, hotel.CategoryDeluxe, view.Category)

	room, err := store.RoomByID(context.Background(), "r101")
	require.NoError(t, err)
	assert.Equal(t, hotel.RoomNotAvailable, room.Status)
}

func TestCreateBookingEndpointErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing fields",
			body:     map[string]any{"user_id": "u1"},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			body: map[string]any{
				"user_id": "u1", "room_id": "r101",
				"check_in": "02-09-2026", "check_out": "2026-09-03",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "past check-in",
			body: map[string]any{
				"user_id": "u1", "room_id": "r101",
				"check_in": "2026-08-30", "check_out": "2026-09-03",
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "check-in cannot be in the past",
		},
		{
			name: "check-out not after check-in",
			body: map[string]any{
				"user_id": "u1", "room_id": "r101",
				"check_in": "2026-09-02", "check_out": "2026-09-02",
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "check-out must be after check-in",
		},
		{
			name: "unknown user",
			body: map[string]any{
				"user_id": "ghost", "room_id": "r101",
				"check_in": "2026-09-02", "check_out": "2026-09-03",
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown room",
			body: map[string]any{
				"user_id": "u1", "room_id": "ghost",
				"check_in": "2026-09-02", "check_out": "2026-09-03",
			},
			wantCode: http.StatusNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/bookings", tc.body)
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantMsg != "" {
				assert.Contains(t, w.Body.String(), tc.wantMsg)
			}
		})
	}
}

func TestPaymentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	view := createBooking(t, router)

	w := doJSON(t, router, http.MethodPost, "/bookings/"+view.BookingID+"/payment", map[string]any{
		"amount_cents": 9999, "method": "CARD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expected: 100.00")

	w = doJSON(t, router, http.MethodPost, "/bookings/"+view.BookingID+"/payment", map[string]any{
		"amount_cents": 10000, "method": "CARD",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decodeBody[booking.View](t, w)
	assert.Equal(t, hotel.StatusBooked, paid.Status)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, hotel.PaymentSuccess, paid.Payment.Status)

	// only one payment per booking
	w = doJSON(t, router, http.MethodPost, "/bookings/"+view.BookingID+"/payment", map[string]any{
		"amount_cents": 10000, "method": "CARD",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/bookings/ghost/payment", map[string]any{
		"amount_cents": 10000, "method": "CARD",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	view := createBooking(t, router)

	w := doJSON(t, router, http.MethodDelete, "/users/u2/bookings/"+view.BookingID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "does not belong to the specified user")

	w = doJSON(t, router, http.MethodDelete, "/users/u1/bookings/"+view.BookingID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	b, err := store.BookingByID(context.Background(), view.BookingID)
	require.NoError(t, err)
	assert.Equal(t, hotel.StatusCancelled, b.Status)
	room, err := store.RoomByID(context.Background(), "r101")
	require.NoError(t, err)
	assert.Equal(t, hotel.RoomAvailable, room.Status)
}

func TestUserBookingsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// empty result surfaces as 404, kept from the source system
	w := doJSON(t, router, http.MethodGet, "/users/u1/bookings", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no bookings found")

	view := createBooking(t, router)
	w = doJSON(t, router, http.MethodGet, "/users/u1/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]booking.View](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, view.BookingID, list[0].BookingID)
}

func TestBookingStatusEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	view := createBooking(t, router)

	w := doJSON(t, router, http.MethodGet, "/bookings/"+view.BookingID+"/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(hotel.StatusConfirmed))

	w = doJSON(t, router, http.MethodGet, "/bookings/ghost/status", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	// a stay that ended yesterday, still BOOKED
	require.NoError(t, store.CreateBooking(context.Background(), &hotel.Booking{
		ID: "b-exp", UserID: "u1", RoomID: "r101",
		BookingDate: today.AddDate(0, 0, -3),
		CheckIn:     today.AddDate(0, 0, -2),
		CheckOut:    today.AddDate(0, 0, -1),
		Status:      hotel.StatusBooked,
	}))

	w := doJSON(t, router, http.MethodPost, "/reconcile", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	b, err := store.BookingByID(context.Background(), "b-exp")
	require.NoError(t, err)
	assert.Equal(t, hotel.StatusCompleted, b.Status)
	room, err := store.RoomByID(context.Background(), "r101")
	require.NoError(t, err)
	assert.Equal(t, hotel.RoomAvailable, room.Status)

	// second trigger is a no-op
	w = doJSON(t, router, http.MethodPost, "/reconcile", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRoomEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/rooms", map[string]any{
		"room_number": "102", "occupancy": "1 adult", "category": "STANDARD", "price_cents": 5000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[RoomResp](t, w)
	assert.Equal(t, hotel.RoomAvailable, created.Status)

	w = doJSON(t, router, http.MethodPost, "/rooms", map[string]any{
		"room_number": "102", "occupancy": "1 adult", "category": "STANDARD", "price_cents": 5000,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]RoomResp](t, w), 2)

	w = doJSON(t, router, http.MethodGet, "/rooms/number/102", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeBody[RoomResp](t, w).ID)

	w = doJSON(t, router, http.MethodGet, "/rooms/category/standard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]RoomResp](t, w), 1)

	w = doJSON(t, router, http.MethodPut, "/rooms/"+created.ID, map[string]any{"price_cents": 5500})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5500), decodeBody[RoomResp](t, w).PriceCents)

	w = doJSON(t, router, http.MethodDelete, "/rooms/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/rooms/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/users/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	u := decodeBody[UserResp](t, w)
	assert.Equal(t, "Sunita", u.FirstName)

	w = doJSON(t, router, http.MethodGet, "/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGatewayEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/payments/order", map[string]any{"room_id": "r101"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeBody[GatewayOrderResp](t, w)
	assert.Equal(t, int64(10000), order.AmountCents)
	assert.Equal(t, "r101", order.RoomID)

	w = doJSON(t, router, http.MethodPost, "/payments/order", map[string]any{"room_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/payments/verify", map[string]any{"order_id": order.OrderID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
