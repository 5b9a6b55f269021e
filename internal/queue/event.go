// Package queue defines message payloads exchanged over the message broker,
// the publisher that emits them and the background consumer that turns
// them into an audit log.
package queue

// BookingLifecycleEvent is published after a booking mutation succeeds.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type BookingLifecycleEvent struct {
    Action      string `json:"action"` // created | cancelled | purged
    BookingID   uint64 `json:"booking_id"`
    UserID      uint64 `json:"user_id"`
    ServiceID   uint64 `json:"service_id"`
    ServiceName string `json:"service_name,omitempty"`
    DateTime    string `json:"date_time,omitempty"`
    OccurredAt  string `json:"occurred_at"`
}
