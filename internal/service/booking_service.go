package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/cleaning-service-api/internal/model"
)

// BookingStore is the slice of the booking repository the lifecycle
// manager needs. Every id lookup is scoped by the owning user so the
// store can never hand back another user's booking.
type BookingStore interface {
	Insert(ctx context.Context, b model.Booking) (model.Booking, error)
	GetForOwner(ctx context.Context, id, ownerID uint64) (model.Booking, error)
	ListForOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error)
	StatusForOwner(ctx context.Context, id, ownerID uint64) (model.BookingStatus, error)
	Update(ctx context.Context, b model.Booking) error
	SetStatus(ctx context.Context, id, ownerID uint64, status model.BookingStatus) error
	Delete(ctx context.Context, id, ownerID uint64) error
}

// ServiceCatalog resolves service ids against the read-only catalog.
type ServiceCatalog interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// BookingService enforces the booking lifecycle: pending on creation,
// optional soft cancel, hard delete. All rules run before any write and
// each operation is a single validate-then-write storage interaction;
// concurrent writes to the same booking are last-write-wins.
type BookingService struct {
	bookings BookingStore
	catalog  ServiceCatalog
	now      func() time.Time // swappable in tests
}

// NewBookingService wires a lifecycle manager over the given stores.
func NewBookingService(b BookingStore, c ServiceCatalog) *BookingService {
	return &BookingService{bookings: b, catalog: c, now: time.Now}
}

// BookingInput carries the client-mutable fields of a booking. Notes is
// optional; everything else is required.
type BookingInput struct {
	CustomerName string
	Address      string
	DateTime     time.Time
	ServiceID    uint64
	Notes        string
}

// validate applies the shared creation/update rules: field presence,
// catalog resolution and the strictly-in-the-future date check.
func (s *BookingService) validate(ctx context.Context, in BookingInput) error {
	if in.CustomerName == "" || in.Address == "" || in.DateTime.IsZero() || in.ServiceID == 0 {
		return fmt.Errorf("%w: customer name, address, date/time and service are required", ErrValidation)
	}
	ok, err := s.catalog.Exists(ctx, in.ServiceID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid service selected", ErrValidation)
	}
	if !in.DateTime.After(s.now()) {
		return fmt.Errorf("%w: booking date must be in the future", ErrValidation)
	}
	return nil
}

// Create validates the input and persists a new pending booking for
// ownerID. On success the full joined record is returned.
func (s *BookingService) Create(ctx context.Context, ownerID uint64, in BookingInput) (model.Booking, error) {
	if err := s.validate(ctx, in); err != nil {
		return model.Booking{}, err
	}
	b := model.Booking{
		UserID:       ownerID,
		ServiceID:    in.ServiceID,
		CustomerName: in.CustomerName,
		Address:      in.Address,
		DateTime:     in.DateTime,
	}
	if in.Notes != "" {
		n := in.Notes
		b.Notes = &n
	}
	return s.bookings.Insert(ctx, b)
}

// Update overwrites the mutable fields of an existing booking owned by
// ownerID. Cancelled bookings are update-immutable. Status and
// created_at are never changed by an update.
func (s *BookingService) Update(ctx context.Context, ownerID, id uint64, in BookingInput) (model.Booking, error) {
	status, err := s.bookings.StatusForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrNotFound
		}
		return model.Booking{}, err
	}
	if status == model.StatusCancelled {
		return model.Booking{}, ErrCancelledImmutable
	}
	if err := s.validate(ctx, in); err != nil {
		return model.Booking{}, err
	}
	b := model.Booking{
		ID:           id,
		UserID:       ownerID,
		ServiceID:    in.ServiceID,
		CustomerName: in.CustomerName,
		Address:      in.Address,
		DateTime:     in.DateTime,
	}
	if in.Notes != "" {
		n := in.Notes
		b.Notes = &n
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return model.Booking{}, err
	}
	return s.bookings.GetForOwner(ctx, id, ownerID)
}

// ListForOwner returns all of a user's bookings newest-first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error) {
	return s.bookings.ListForOwner(ctx, ownerID)
}

// Cancel soft-deletes a booking: status flips to cancelled, the row is
// retained. Cancelling an already-cancelled booking repeats the flip,
// which is a no-op in effect.
func (s *BookingService) Cancel(ctx context.Context, ownerID, id uint64) error {
	if _, err := s.bookings.StatusForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.bookings.SetStatus(ctx, id, ownerID, model.StatusCancelled)
}

// Purge removes a booking row permanently, from any status. The UI only
// offers this for cancelled bookings, but the server keeps the original
// any-status behavior. Irreversible; no tombstone is kept.
func (s *BookingService) Purge(ctx context.Context, ownerID, id uint64) error {
	if _, err := s.bookings.StatusForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.bookings.Delete(ctx, id, ownerID)
}
