package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwrona/restaurant-server/internal/booking"
	"github.com/mwrona/restaurant-server/internal/middleware"
	"github.com/mwrona/restaurant-server/internal/model"
	"github.com/mwrona/restaurant-server/internal/queue"
	"github.com/mwrona/restaurant-server/internal/repository"
	"github.com/mwrona/restaurant-server/internal/service"
)

type stubStore struct {
	nextID       uint64
	reservations []model.Reservation
}

func (s *stubStore) ListForTableOn(_ context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) Create(_ context.Context, res *model.Reservation) error {
	s.nextID++
	res.ID = s.nextID
	s.reservations = append(s.reservations, *res)
	return nil
}

func (s *stubStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reservation{}, repository.ErrNotFound
}

func (s *stubStore) Delete(_ context.Context, id uint64) error {
	for i, r := range s.reservations {
		if r.ID == id {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubStore) ListByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) ListAll(_ context.Context) ([]model.Reservation, error) {
	return s.reservations, nil
}

type stubTables struct{ tables []model.Table }

func (s *stubTables) ListAll(_ context.Context) ([]model.Table, error) { return s.tables, nil }

func (s *stubTables) ListWithCapacity(_ context.Context, minSeats int) ([]model.Table, error) {
	var out []model.Table
	for _, t := range s.tables {
		if t.Seats >= minSeats {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubUsers struct{}

func (stubUsers) GetByID(_ context.Context, _ uint64) (model.User, error) {
	return model.User{}, repository.ErrNotFound
}

type stubPublisher struct{}

func (stubPublisher) PublishConfirmed(_ context.Context, _ queue.ReservationEvent) error { return nil }
func (stubPublisher) PublishCancelled(_ context.Context, _ queue.ReservationEvent) error { return nil }

func newReservationHandler() (*ReservationHandler, *stubStore) {
	store := &stubStore{}
	tables := &stubTables{tables: []model.Table{{ID: 1, Seats: 4}, {ID: 2, Seats: 8}}}
	engine := booking.NewEngine(tables, store, 2)
	svc := service.NewReservationService(engine, store, stubUsers{}, stubPublisher{})
	return NewReservationHandler(svc), store
}

func postJSON(path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReservationHandler_Create_Guest(t *testing.T) {
	h, store := newReservationHandler()
	c, rec := postJSON("/v1/reservations", map[string]interface{}{
		"date": "2025-06-01", "time": "18:00", "seats": 2,
		"firstName": "Jan", "lastName": "Kowalski", "email": "jan@example.com",
	})

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["tableId"])
	assert.Equal(t, "20:00", resp["endTime"])
	assert.Len(t, store.reservations, 1)
}

func TestReservationHandler_Create_MissingContact(t *testing.T) {
	h, store := newReservationHandler()
	c, rec := postJSON("/v1/reservations", map[string]interface{}{
		"date": "2025-06-01", "time": "18:00", "seats": 2,
	})

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.reservations)
}

func TestReservationHandler_Create_NoTable(t *testing.T) {
	h, _ := newReservationHandler()
	c, rec := postJSON("/v1/reservations", map[string]interface{}{
		"date": "2025-06-01", "time": "18:00", "seats": 20, "email": "jan@example.com",
	})

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no tables available")
}

func TestReservationHandler_CheckAvailability(t *testing.T) {
	h, _ := newReservationHandler()
	c, rec := postJSON("/v1/check-availability", map[string]interface{}{
		"date": "2025-06-01", "time": "18:00", "seats": 4,
	})

	require.NoError(t, h.CheckAvailability(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["available"])
	assert.Equal(t, float64(1), resp["tableId"])
}

func TestReservationHandler_AvailableSeats(t *testing.T) {
	h, _ := newReservationHandler()
	c, rec := postJSON("/v1/available-seats", map[string]interface{}{
		"date": "2025-06-01", "time": "18:00",
	})

	require.NoError(t, h.AvailableSeats(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AvailableSeats []int `json:"availableSeats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int{4, 8}, resp.AvailableSeats)
}

func TestReservationHandler_Cancel_Anonymous(t *testing.T) {
	h, _ := newReservationHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationHandler_Cancel_Owner(t *testing.T) {
	h, store := newReservationHandler()
	uid := uint64(7)
	store.reservations = []model.Reservation{{
		ID: 1, TableID: 1, Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00",
		Seats: 2, Email: "jan@example.com", UserID: &uid,
	}}
	store.nextID = 1

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set(middleware.CtxUserID, uid)
	c.Set(middleware.CtxRole, model.RoleUser)

	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.reservations)
}
