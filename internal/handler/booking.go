package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cleaning-service-api/internal/middleware"
	"github.com/iliyamo/cleaning-service-api/internal/model"
	"github.com/iliyamo/cleaning-service-api/internal/queue"
	"github.com/iliyamo/cleaning-service-api/internal/service"
)

// BookingManager is the lifecycle core every booking endpoint dispatches
// to. It is an interface so handler tests can run against a fake without
// a database.
type BookingManager interface {
	Create(ctx context.Context, ownerID uint64, in service.BookingInput) (model.Booking, error)
	Update(ctx context.Context, ownerID, id uint64, in service.BookingInput) (model.Booking, error)
	ListForOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error)
	Cancel(ctx context.Context, ownerID, id uint64) error
	Purge(ctx context.Context, ownerID, id uint64) error
}

// BookingHandler maps the REST surface onto the lifecycle manager and
// translates its errors into HTTP status codes. Publish is the injected
// event sink; broker failures are logged inside the publisher and never
// affect the response.
type BookingHandler struct {
	Manager BookingManager
	Publish func(ctx context.Context, ev queue.BookingLifecycleEvent) error
}

func NewBookingHandler(m BookingManager) *BookingHandler {
	return &BookingHandler{Manager: m, Publish: queue.PublishLifecycleEvent}
}

// bookingReq is the create/update request body.
type bookingReq struct {
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
	DateTime     string `json:"date_time"`
	ServiceID    uint64 `json:"service_id"`
	Notes        string `json:"notes"`
}

// dateTimeLayouts are the accepted date_time formats: RFC3339, the
// value of an HTML datetime-local input, and a plain SQL datetime.
var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05"}

func parseDateTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true // presence is validated downstream
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r bookingReq) toInput() (service.BookingInput, bool) {
	dt, ok := parseDateTime(r.DateTime)
	if !ok {
		return service.BookingInput{}, false
	}
	return service.BookingInput{
		CustomerName: r.CustomerName,
		Address:      r.Address,
		DateTime:     dt,
		ServiceID:    r.ServiceID,
		Notes:        r.Notes,
	}, true
}

// lifecycleError maps manager errors to responses. Storage failures are
// logged server-side and genericized so internals never leak.
func lifecycleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, service.ErrCancelledImmutable):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Cannot update cancelled booking"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	default:
		c.Logger().Errorf("booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
}

func bookingID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// publish emits a lifecycle event through the injected sink.
func (h *BookingHandler) publish(ctx context.Context, action string, b model.Booking, ownerID, id uint64) {
	if h.Publish == nil {
		return
	}
	ev := queue.BookingLifecycleEvent{
		Action:     action,
		BookingID:  id,
		UserID:     ownerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if b.ID != 0 {
		ev.BookingID = b.ID
		ev.ServiceID = b.ServiceID
		ev.ServiceName = b.ServiceName
		ev.DateTime = b.DateTime.UTC().Format(time.RFC3339)
	}
	_ = h.Publish(ctx, ev)
}

// List returns the caller's bookings newest-first, joined with service
// display fields.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Manager.ListForOwner(ctx, middleware.UserID(c))
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create validates and persists a new pending booking for the caller.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	in, ok := req.toInput()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date_time format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := middleware.UserID(c)
	b, err := h.Manager.Create(ctx, ownerID, in)
	if err != nil {
		return lifecycleError(c, err)
	}
	h.publish(ctx, "created", b, ownerID, b.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking created successfully",
		"booking": b,
	})
}

// Update overwrites the mutable fields of one of the caller's bookings.
func (h *BookingHandler) Update(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	in, inputOK := req.toInput()
	if !inputOK {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date_time format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Manager.Update(ctx, middleware.UserID(c), id, in)
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Booking updated successfully",
		"booking": b,
	})
}

// Cancel soft-deletes a booking: status flips to cancelled and the row
// is kept.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := middleware.UserID(c)
	if err := h.Manager.Cancel(ctx, ownerID, id); err != nil {
		return lifecycleError(c, err)
	}
	h.publish(ctx, "cancelled", model.Booking{}, ownerID, id)

	return c.JSON(http.StatusOK, echo.Map{"message": "Booking cancelled successfully"})
}

// Purge hard-deletes a booking permanently, from any status.
func (h *BookingHandler) Purge(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := middleware.UserID(c)
	if err := h.Manager.Purge(ctx, ownerID, id); err != nil {
		return lifecycleError(c, err)
	}
	h.publish(ctx, "purged", model.Booking{}, ownerID, id)

	return c.JSON(http.StatusOK, echo.Map{"message": "Booking permanently deleted successfully"})
}
