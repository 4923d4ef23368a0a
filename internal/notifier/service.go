// Package notifier consumes the booking lifecycle topics: it keeps the redis
// booking-status cache current and logs the guest notification that a real
// deployment would hand to mail/SMS.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	kafkax "github.com/SunitaSingh93/Albergo/internal/kafka"
	"github.com/SunitaSingh93/Albergo/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleBookingEvent is wired as the consumer handler for all booking topics.
func (s *Service) HandleBookingEvent(ctx context.Context, m kafkago.Message) error {
	var env hotel.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	status, ok := StatusFor(env.EventType)
	if !ok {
		return nil // not a lifecycle event, ignore
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

		key := fmt.Sprintf(redisx.KeyBookingStatus, env.CorrelationID)
		_ = s.Redis.Set(ctx, key, StatusJSON(status), redisx.TTLStatusCache).Err()
	}

	s.notify(env)
	return nil
}

func (s *Service) notify(env hotel.Envelope) {
	switch env.EventType {
	case hotel.EventBookingCreated:
		p, err := kafkax.UnwrapPayload[hotel.BookingCreatedPayload](env.Payload)
		if err != nil {
			log.Printf("notifier: %v", err)
			return
		}
		log.Printf("notify user %s: booking %s confirmed for %s to %s",
			p.UserID, p.BookingID, p.CheckIn, p.CheckOut)
	case hotel.EventBookingPaid:
		p, err := kafkax.UnwrapPayload[hotel.BookingPaidPayload](env.Payload)
		if err != nil {
			log.Printf("notifier: %v", err)
			return
		}
		log.Printf("notify: booking %s paid %d cents via %s", p.BookingID, p.AmountCents, p.Method)
	case hotel.EventBookingCancelled:
		log.Printf("notify: booking %s cancelled", env.CorrelationID)
	case hotel.EventBookingCompleted:
		log.Printf("notify: booking %s completed, room released", env.CorrelationID)
	}
}

// StatusFor maps a lifecycle event type to the booking status it implies.
func StatusFor(eventType string) (hotel.BookingStatus, bool) {
	switch eventType {
	case hotel.EventBookingCreated:
		return hotel.StatusConfirmed, true
	case hotel.EventBookingPaid:
		return hotel.StatusBooked, true
	case hotel.EventBookingCancelled:
		return hotel.StatusCancelled, true
	case hotel.EventBookingCompleted:
		return hotel.StatusCompleted, true
	default:
		return "", false
	}
}

// StatusJSON renders the cache value stored under booking_status keys.
func StatusJSON(status hotel.BookingStatus) string {
	return fmt.Sprintf(`{"status":%q}`, status)
}
