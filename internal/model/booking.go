package model

import "time"

// BookingStatus enumerates the legal states of a booking. Keeping the
// states as a closed type instead of free-form strings means an
// illegal status cannot flow from a handler into the database.
type BookingStatus string

const (
    StatusPending   BookingStatus = "pending"   // initial state on creation
    StatusConfirmed BookingStatus = "confirmed" // set administratively, never through this API
    StatusCancelled BookingStatus = "cancelled" // soft delete; row is retained
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusCancelled:
        return true
    }
    return false
}

// Booking records a customer's appointment for a cleaning service.
// It mirrors the `bookings` table joined with the owning service's
// display columns, which is the shape every read path returns.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owner of the booking; sole authorized mutator.
//  ServiceID     – the catalog service being booked.
//  CustomerName  – name of the person the cleaner should ask for.
//  Address       – where the cleaning happens.
//  DateTime      – scheduled start, strictly in the future at write time.
//  Status        – current lifecycle state.
//  Notes         – optional free text (nullable in the database).
//  CreatedAt     – creation timestamp, immutable after insert.
//  ServiceName, ServiceDescription, ServicePrice, DurationHours –
//                  joined from `services` for display.
type Booking struct {
    ID                 uint64        `json:"id"`             // bookings.id
    UserID             uint64        `json:"-"`              // bookings.user_id, never exposed
    ServiceID          uint64        `json:"service_id"`     // bookings.service_id
    CustomerName       string        `json:"customer_name"`  // bookings.customer_name
    Address            string        `json:"address"`        // bookings.address
    DateTime           time.Time     `json:"date_time"`      // bookings.date_time
    Status             BookingStatus `json:"status"`         // bookings.status
    Notes              *string       `json:"notes"`          // bookings.notes (nullable)
    CreatedAt          time.Time     `json:"created_at"`     // bookings.created_at
    ServiceName        string        `json:"name"`           // services.name
    ServiceDescription string        `json:"description"`    // services.description
    ServicePrice       float64       `json:"price"`          // services.price
    DurationHours      uint32        `json:"duration_hours"` // services.duration_hours
}
