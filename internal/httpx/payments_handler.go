package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/gateway"
	"github.com/SunitaSingh93/Albergo/internal/rooms"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// PaymentsHandler fronts the external payment gateway: order creation priced
// from the room, and verification of a gateway callback.
type PaymentsHandler struct {
	Gateway  gateway.Verifier
	Rooms    *rooms.Service
	Validate *validator.Validate
}

type GatewayOrderReq struct {
	RoomID string `json:"room_id" validate:"required"`
}

type GatewayOrderResp struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	RoomID      string `json:"room_id"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

type GatewayVerifyReq struct {
	OrderID    string `json:"order_id" validate:"required"`
	PaymentRef string `json:"payment_ref"`
	Signature  string `json:"signature"`
}

func (h *PaymentsHandler) Register(r *chi.Mux) {
	r.Post("/payments/order", h.createOrder)
	r.Post("/payments/verify", h.verify)
}

func (h *PaymentsHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[GatewayOrderReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.RoomByID(ctx, req.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.Gateway.CreateOrder(ctx, room.PriceCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, GatewayOrderResp{
		OrderID:     order.OrderID,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		RoomID:      room.ID,
		Receipt:     order.Receipt,
		Status:      order.Status,
	})
}

func (h *PaymentsHandler) verify(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[GatewayVerifyReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	v, err := h.Gateway.Verify(ctx, req.OrderID, req.PaymentRef, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
