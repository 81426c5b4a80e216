package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/repository"
)

// TableHandler exposes the table catalog metadata the booking form needs.
type TableHandler struct {
	Tables *repository.TableRepo
}

func NewTableHandler(t *repository.TableRepo) *TableHandler {
	if t == nil {
		panic("nil repo passed to NewTableHandler")
	}
	return &TableHandler{Tables: t}
}

// MaxSeats handles GET /v1/tables/max-seats.  The client caps its
// party-size selector at this value.
func (h *TableHandler) MaxSeats(c echo.Context) error {
	max, err := h.Tables.MaxSeats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"maxSeats": max})
}
