package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mwrona/restaurant-server/internal/config"
	"github.com/mwrona/restaurant-server/internal/handler"
	"github.com/mwrona/restaurant-server/internal/middleware"
)

// RegisterReservations registers the booking endpoints.  Creation and
// the availability probes run with optional auth so guests can book
// without an account; they are rate limited because they are the
// hottest unauthenticated writes.  Listing and cancellation require a
// token.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string,
	rlCfg config.RateLimitConfig, rdb *redis.Client) {

	limited := middleware.RateLimit(rlCfg, rdb)

	e.POST("/v1/reservations", h.Create, middleware.OptionalJWTAuth(jwtSecret), limited)
	e.POST("/v1/check-availability", h.CheckAvailability, limited)
	e.POST("/v1/available-seats", h.AvailableSeats, limited)

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.GET("/reservations", h.ListMine)
	g.DELETE("/reservations/:id", h.Cancel)
}
