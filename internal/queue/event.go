// Package queue defines the reservation events exchanged over the
// message broker and the background consumer that turns them into
// outbound mail.  Publishing after commit and draining from a separate
// goroutine keeps mail delivery off the request path: a broker or SMTP
// failure never rolls back a persisted reservation.
package queue

// Queue names.  Both queues are declared durable by publisher and
// consumer alike so declaration is idempotent on either side.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationEvent carries everything the mail consumer needs to format
// a confirmation or cancellation message without querying the database.
type ReservationEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	TableID        uint64 `json:"table_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Seats          int    `json:"seats"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	Email          string `json:"email"`
	OccurredAt     string `json:"occurred_at"`
}
