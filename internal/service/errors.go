// Package service holds the booking lifecycle rules: field validation,
// state transitions and ownership checks. Handlers translate the
// sentinel errors defined here into HTTP status codes; anything that is
// not one of these sentinels is a storage failure and surfaces as a
// generic 500.
package service

import "errors"

// ErrValidation is returned when input fails a business rule: a missing
// field, an unknown service id or a date_time that is not strictly in
// the future. Wrapped with the concrete reason for the client.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when no booking with the requested id belongs
// to the calling user. A booking owned by someone else produces the
// same error so record existence is never leaked across users.
var ErrNotFound = errors.New("booking not found")

// ErrCancelledImmutable is returned on an update attempt against a
// cancelled booking. Cancelled records keep their final state; they can
// only be purged.
var ErrCancelledImmutable = errors.New("cannot update cancelled booking")
