// Package gateway abstracts the external payment gateway. The real
// integration is out of scope; Stub mimics the shape of a gateway order and
// verification so the presentation layer can exercise the flow end to end.
package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"` // unix seconds
}

type Verification struct {
	Status     string `json:"status"` // success | failed
	OrderID    string `json:"order_id"`
	PaymentRef string `json:"payment_ref,omitempty"`
	Signature  string `json:"signature,omitempty"`
	Message    string `json:"message"`
}

// Verifier is the pluggable seam for a real gateway.
type Verifier interface {
	CreateOrder(ctx context.Context, amountCents int64) (*Order, error)
	Verify(ctx context.Context, orderID, paymentRef, signature string) (*Verification, error)
}

// Stub fabricates orders and verifies payments with a fixed success rate.
type Stub struct {
	Currency string
	// Rand is swappable in tests; defaults to rand.Float64.
	Rand func() float64
}

func shortRef(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

func (s *Stub) CreateOrder(_ context.Context, amountCents int64) (*Order, error) {
	currency := s.Currency
	if currency == "" {
		currency = "INR"
	}
	now := time.Now()
	return &Order{
		OrderID:     shortRef("order_"),
		AmountCents: amountCents,
		Currency:    currency,
		Receipt:     fmt.Sprintf("txn_%d", now.UnixMilli()),
		Status:      "created",
		CreatedAt:   now.Unix(),
	}, nil
}

func (s *Stub) Verify(_ context.Context, orderID, paymentRef, signature string) (*Verification, error) {
	roll := rand.Float64
	if s.Rand != nil {
		roll = s.Rand
	}
	if roll() <= 0.1 {
		return &Verification{
			Status:  "failed",
			OrderID: orderID,
			Message: "payment verification failed",
		}, nil
	}
	if paymentRef == "" {
		paymentRef = shortRef("pay_")
	}
	if signature == "" {
		signature = fmt.Sprintf("sig_%d", time.Now().UnixMilli())
	}
	return &Verification{
		Status:     "success",
		OrderID:    orderID,
		PaymentRef: paymentRef,
		Signature:  signature,
		Message:    "payment verified successfully",
	}, nil
}
