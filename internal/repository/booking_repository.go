package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cleaning-service-api/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Every lookup that
// takes a booking id is also scoped by the owning user id, so a booking
// belonging to another user is indistinguishable from a missing row.
// All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// joinedSelect is the read shape every booking endpoint returns: the
// bookings row joined with the service's display columns.
const joinedSelect = `SELECT b.id, b.user_id, b.service_id, b.customer_name, b.address,
       b.date_time, b.status, b.notes, b.created_at,
       s.name, s.description, s.price, s.duration_hours
FROM bookings b
JOIN services s ON b.service_id = s.id`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var notes sql.NullString
	err := row.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.CustomerName, &b.Address,
		&b.DateTime, &b.Status, &notes, &b.CreatedAt,
		&b.ServiceName, &b.ServiceDescription, &b.ServicePrice, &b.DurationHours)
	if err != nil {
		return model.Booking{}, err
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return b, nil
}

// Insert persists a new booking and returns the full joined record.
// The database assigns the id, the pending status default and created_at.
func (r *BookingRepo) Insert(ctx context.Context, b model.Booking) (model.Booking, error) {
	var notes any
	if b.Notes != nil {
		notes = *b.Notes
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings (customer_name, address, date_time, service_id, user_id, notes) VALUES (?,?,?,?,?,?)",
		b.CustomerName, b.Address, b.DateTime, b.ServiceID, b.UserID, notes)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	return scanBooking(r.db.QueryRowContext(ctx, joinedSelect+" WHERE b.id = ?", id))
}

// GetForOwner returns one joined booking scoped by (id, ownerID).
// sql.ErrNoRows is returned both when the row is absent and when it is
// owned by someone else.
func (r *BookingRepo) GetForOwner(ctx context.Context, id, ownerID uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		joinedSelect+" WHERE b.id = ? AND b.user_id = ?", id, ownerID))
}

// ListForOwner returns all of a user's bookings ordered by date_time
// descending, joined with service display fields.
func (r *BookingRepo) ListForOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		joinedSelect+" WHERE b.user_id = ? ORDER BY b.date_time DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// StatusForOwner returns the current status of a booking scoped by
// (id, ownerID). Used by update/cancel to check existence and state
// before writing.
func (r *BookingRepo) StatusForOwner(ctx context.Context, id, ownerID uint64) (model.BookingStatus, error) {
	var s model.BookingStatus
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id=? AND user_id=? LIMIT 1", id, ownerID).Scan(&s)
	return s, err
}

// Update overwrites the mutable fields of a booking in place. Status and
// created_at are never touched. The write is scoped by (id, ownerID).
func (r *BookingRepo) Update(ctx context.Context, b model.Booking) error {
	var notes any
	if b.Notes != nil {
		notes = *b.Notes
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET customer_name=?, address=?, date_time=?, service_id=?, notes=? WHERE id=? AND user_id=?",
		b.CustomerName, b.Address, b.DateTime, b.ServiceID, notes, b.ID, b.UserID)
	return err
}

// SetStatus flips a booking's status, scoped by (id, ownerID). The row
// is retained; this is the soft-cancel write.
func (r *BookingRepo) SetStatus(ctx context.Context, id, ownerID uint64, status model.BookingStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND user_id=?", status, id, ownerID)
	return err
}

// Delete removes a booking row permanently, scoped by (id, ownerID).
// No tombstone is kept.
func (r *BookingRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM bookings WHERE id=? AND user_id=?", id, ownerID)
	return err
}
