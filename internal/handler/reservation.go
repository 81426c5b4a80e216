package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/booking"
	"github.com/mwrona/restaurant-server/internal/model"
	"github.com/mwrona/restaurant-server/internal/repository"
	"github.com/mwrona/restaurant-server/internal/service"
)

// ReservationHandler exposes the booking endpoints.  Creation runs with
// optional auth (guests book with name+email); listing and cancellation
// require a token, the admin listing additionally the ADMIN role.
type ReservationHandler struct {
	Svc *service.ReservationService
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// ----- DTOs -----

type createReservationReq struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	Seats          int    `json:"seats"`
	AdditionalInfo string `json:"additionalInfo"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
}

type slotReq struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Seats int    `json:"seats"`
}

type reservationResp struct {
	ID             uint64  `json:"id"`
	TableID        uint64  `json:"tableId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	EndTime        string  `json:"endTime"`
	Seats          int     `json:"seats"`
	AdditionalInfo *string `json:"additionalInfo,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          string  `json:"email"`
	UserID         *uint64 `json:"userId,omitempty"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:             r.ID,
		TableID:        r.TableID,
		Date:           r.Date,
		Time:           r.StartTime,
		EndTime:        r.EndTime,
		Seats:          r.Seats,
		AdditionalInfo: r.AdditionalInfo,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		UserID:         r.UserID,
	}
}

// Create handles POST /v1/reservations.  Guests supply firstName,
// lastName and email; authenticated users are identified by their token
// and notified at their profile address.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Svc.Create(c.Request().Context(), service.CreateRequest{
		Date:           req.Date,
		Time:           req.Time,
		Seats:          req.Seats,
		AdditionalInfo: req.AdditionalInfo,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		User:           identityFrom(c),
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, toReservationResp(res))
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, time and seats are required"})
	case errors.Is(err, service.ErrMissingContact):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no email address to send the confirmation to"})
	case errors.Is(err, booking.ErrNoTableAvailable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no tables available for the selected time"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
}

// Cancel handles DELETE /v1/reservations/:id.  Only the owner or an
// admin may cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ident := identityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	err = h.Svc.Cancel(c.Request().Context(), id, *ident)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
}

// ListMine handles GET /v1/reservations for the authenticated user.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll handles GET /v1/admin/reservations.  Gated behind the ADMIN
// role by the router.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	list, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// CheckAvailability handles POST /v1/check-availability: a dry-run of
// table assignment for the requested slot and party size.
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ok, tableID, err := h.Svc.CheckAvailability(c.Request().Context(), req.Seats, req.Date, req.Time)
	if errors.Is(err, service.ErrValidation) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, time and seats are required"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"available": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": true, "tableId": tableID})
}

// AvailableSeats handles POST /v1/available-seats: the capacities still
// free at the given slot, one entry per free table.
func (h *ReservationHandler) AvailableSeats(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	seats, err := h.Svc.AvailableSeats(c.Request().Context(), req.Date, req.Time)
	if errors.Is(err, service.ErrValidation) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and time are required"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"availableSeats": seats})
}
