package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/handler"
	"github.com/mwrona/restaurant-server/internal/middleware"
)

// RegisterAdmin registers the content management endpoints under
// /v1/admin.  All routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, r *handler.ReservationHandler, m *handler.MenuHandler,
	n *handler.NewsHandler, t *handler.TestimonialHandler, jwtSecret string) {

	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.GET("/reservations", r.ListAll)

	g.POST("/menu", m.Create)
	g.PUT("/menu/:id", m.Update)
	g.DELETE("/menu/:id", m.Delete)

	g.POST("/news", n.Create)
	g.PUT("/news/:id", n.Update)
	g.DELETE("/news/:id", n.Delete)

	g.POST("/testimonials", t.Create)
	g.PUT("/testimonials/:id", t.Update)
	g.DELETE("/testimonials/:id", t.Delete)
}
