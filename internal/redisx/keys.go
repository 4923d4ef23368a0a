package redisx

import "time"

const (
	// Cache booking status: booking_status:{booking_id} -> {"status": "..."}
	KeyBookingStatus = "booking_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Single-flight lock for a reconciliation sweep.
	KeyReconcileLock = "lock:reconcile"
)

var (
	TTLStatusCache   = 5 * time.Minute
	TTLDedup         = 48 * time.Hour
	TTLReconcileLock = time.Minute
)
