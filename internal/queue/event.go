// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingQueueName is the durable queue carrying BookingConfirmedEvent messages.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published after a booking commits.  It carries
// enough information for downstream consumers to log or notify without
// reading the coach back from the database.
type BookingConfirmedEvent struct {
    Reference      string `json:"reference"`
    CoachID        uint64 `json:"coach_id"`
    Seats          []int  `json:"seats"`
    Strategy       string `json:"strategy"`        // same_row | multi_row
    AvailableAfter int    `json:"available_after"` // free seats left in the coach
    ConfirmedAt    string `json:"confirmed_at"`    // RFC3339, UTC
}
