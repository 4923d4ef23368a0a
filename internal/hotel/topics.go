package hotel

const (
	TopicBookingCreated   = "hotel.booking.created"
	TopicBookingPaid      = "hotel.booking.paid"
	TopicBookingCancelled = "hotel.booking.cancelled"
	TopicBookingCompleted = "hotel.booking.completed"
)

// Topics every consumer of the booking lifecycle should subscribe to.
var BookingTopics = []string{
	TopicBookingCreated,
	TopicBookingPaid,
	TopicBookingCancelled,
	TopicBookingCompleted,
}

// Partition key = booking_id so events for one booking stay ordered.
func PartitionKey(bookingID string) []byte { return []byte(bookingID) }
