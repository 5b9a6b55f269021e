package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cleaning-service-api/internal/model"
	"github.com/iliyamo/cleaning-service-api/internal/queue"
	"github.com/iliyamo/cleaning-service-api/internal/service"
)

// fakeManager records lifecycle calls and returns canned results.
type fakeManager struct {
	booking model.Booking
	err     error

	lastOwner uint64
	lastID    uint64
}

func (f *fakeManager) Create(_ context.Context, ownerID uint64, _ service.BookingInput) (model.Booking, error) {
	f.lastOwner = ownerID
	return f.booking, f.err
}

func (f *fakeManager) Update(_ context.Context, ownerID, id uint64, _ service.BookingInput) (model.Booking, error) {
	f.lastOwner, f.lastID = ownerID, id
	return f.booking, f.err
}

func (f *fakeManager) ListForOwner(_ context.Context, ownerID uint64) ([]model.Booking, error) {
	f.lastOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return []model.Booking{f.booking}, nil
}

func (f *fakeManager) Cancel(_ context.Context, ownerID, id uint64) error {
	f.lastOwner, f.lastID = ownerID, id
	return f.err
}

func (f *fakeManager) Purge(_ context.Context, ownerID, id uint64) error {
	f.lastOwner, f.lastID = ownerID, id
	return f.err
}

func newTestHandler(m *fakeManager) (*BookingHandler, *[]queue.BookingLifecycleEvent) {
	events := &[]queue.BookingLifecycleEvent{}
	h := &BookingHandler{
		Manager: m,
		Publish: func(_ context.Context, ev queue.BookingLifecycleEvent) error {
			*events = append(*events, ev)
			return nil
		},
	}
	return h, events
}

func doBooking(t *testing.T, h echo.HandlerFunc, method, paramID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7)) // what JWTAuth injects
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	require.NoError(t, h(c))
	return rec
}

func sampleBooking() model.Booking {
	return model.Booking{
		ID:           3,
		UserID:       7,
		ServiceID:    1,
		CustomerName: "Bob",
		Address:      "1 Main St",
		DateTime:     time.Now().Add(48 * time.Hour),
		Status:       model.StatusPending,
		ServiceName:  "Deep Cleaning",
		ServicePrice: 120.00,
	}
}

func TestCreate_PublishesEventAndReturns201(t *testing.T) {
	m := &fakeManager{booking: sampleBooking()}
	h, events := newTestHandler(m)

	rec := doBooking(t, h.Create, http.MethodPost, "",
		`{"customer_name":"Bob","address":"1 Main St","date_time":"2026-04-01T10:00","service_id":1}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending"`)
	assert.Equal(t, uint64(7), m.lastOwner)

	require.Len(t, *events, 1)
	assert.Equal(t, "created", (*events)[0].Action)
	assert.Equal(t, uint64(3), (*events)[0].BookingID)
}

func TestCreate_ValidationFailureIs400AndUnpublished(t *testing.T) {
	m := &fakeManager{err: service.ErrValidation}
	h, events := newTestHandler(m)

	rec := doBooking(t, h.Create, http.MethodPost, "",
		`{"customer_name":"Bob","address":"1 Main St","date_time":"2020-01-01T10:00","service_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, *events)
}

func TestCreate_UnparseableDateIs400(t *testing.T) {
	h, _ := newTestHandler(&fakeManager{booking: sampleBooking()})

	rec := doBooking(t, h.Create, http.MethodPost, "",
		`{"customer_name":"Bob","address":"1 Main St","date_time":"next tuesday","service_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate_CancelledBookingIs400(t *testing.T) {
	m := &fakeManager{err: service.ErrCancelledImmutable}
	h, _ := newTestHandler(m)

	rec := doBooking(t, h.Update, http.MethodPut, "3",
		`{"customer_name":"Bob","address":"1 Main St","date_time":"2026-04-01T10:00","service_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot update cancelled booking")
}

func TestUpdate_NotFoundIs404(t *testing.T) {
	m := &fakeManager{err: service.ErrNotFound}
	h, _ := newTestHandler(m)

	rec := doBooking(t, h.Update, http.MethodPut, "3",
		`{"customer_name":"Bob","address":"1 Main St","date_time":"2026-04-01T10:00","service_id":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking not found")
}

func TestCancel_PublishesEvent(t *testing.T) {
	m := &fakeManager{}
	h, events := newTestHandler(m)

	rec := doBooking(t, h.Cancel, http.MethodDelete, "3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), m.lastOwner)
	assert.Equal(t, uint64(3), m.lastID)
	require.Len(t, *events, 1)
	assert.Equal(t, "cancelled", (*events)[0].Action)
}

func TestPurge_NonNumericIDIs404(t *testing.T) {
	h, events := newTestHandler(&fakeManager{})

	rec := doBooking(t, h.Purge, http.MethodDelete, "abc", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, *events)
}

func TestStorageFailureIsGeneric500(t *testing.T) {
	m := &fakeManager{err: context.DeadlineExceeded}
	h, _ := newTestHandler(m)

	rec := doBooking(t, h.List, http.MethodGet, "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "deadline")
}
