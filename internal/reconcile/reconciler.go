// Package reconcile runs the periodic sweep that closes out bookings whose
// stay has ended and returns their rooms to inventory.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	kafkax "github.com/SunitaSingh93/Albergo/internal/kafka"
	"github.com/SunitaSingh93/Albergo/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Reconciler struct {
	Bookings hotel.BookingStore
	Redis    *redis.Client    // optional: run lock + status cache invalidation
	Producer *kafkax.Producer // optional: booking.completed events
	Service  string

	// Interval between sweeps; defaults to 24h.
	Interval time.Duration

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run drives RunOnce on a ticker until the context is cancelled. A failed
// sweep is logged and the ticker keeps going.
func (r *Reconciler) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := r.RunOnce(ctx); err != nil {
				log.Printf("reconcile: %v", err)
			}
		}
	}
}

// RunOnce performs one sweep: every non-terminal booking with a check-out
// before today goes to COMPLETED and its room back to AVAILABLE. Re-running
// against an unchanged set selects nothing. Safe to trigger manually.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	if r.Redis != nil {
		ok, err := r.Redis.SetNX(ctx, redisx.KeyReconcileLock, "1", redisx.TTLReconcileLock).Result()
		if err != nil {
			log.Printf("reconcile lock: %v", err)
		} else if !ok {
			return nil // another sweep is already running
		} else {
			defer r.Redis.Del(context.WithoutCancel(ctx), redisx.KeyReconcileLock)
		}
	}

	today := hotel.DateOnly(r.now())
	sweep, err := r.Bookings.CompleteExpired(ctx, today)
	if err != nil {
		return err
	}
	if len(sweep.BookingIDs) == 0 {
		return nil
	}
	log.Printf("reconcile: completed %d bookings, released %d rooms",
		len(sweep.BookingIDs), len(sweep.RoomIDs))

	for _, id := range sweep.BookingIDs {
		r.announceCompleted(ctx, id)
	}
	return nil
}

func (r *Reconciler) announceCompleted(ctx context.Context, bookingID string) {
	if r.Redis != nil {
		key := fmt.Sprintf(redisx.KeyBookingStatus, bookingID)
		_ = r.Redis.Del(ctx, key).Err()
	}
	if r.Producer == nil {
		return
	}
	ev := hotel.Envelope{
		EventID:       uuid.NewString(),
		EventType:     hotel.EventBookingCompleted,
		EventVersion:  1,
		OccurredAt:    r.now().UTC(),
		Producer:      r.Service,
		CorrelationID: bookingID,
		Payload:       kafkax.MustMarshal(hotel.BookingCompletedPayload{BookingID: bookingID}),
	}
	r.Producer.Publish(hotel.TopicBookingCompleted, hotel.PartitionKey(bookingID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(hotel.EventBookingCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
