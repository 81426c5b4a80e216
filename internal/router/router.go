package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mwrona/restaurant-server/internal/config"
	"github.com/mwrona/restaurant-server/internal/handler"
	"github.com/mwrona/restaurant-server/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// operations live under /v1/auth, the profile endpoint under /v1 behind
// the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.GET("/confirm-email", a.ConfirmEmail)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated content endpoints: menu,
// news, testimonials and the table catalog metadata.  GET responses are
// cached in Redis since these payloads change only on admin edits.
func RegisterPublic(e *echo.Echo, m *handler.MenuHandler, n *handler.NewsHandler,
	t *handler.TestimonialHandler, tbl *handler.TableHandler,
	cacheCfg config.CacheConfig, rdb *redis.Client) {

	cached := middleware.CacheResponse(cacheCfg, rdb)

	e.GET("/v1/menu", m.List, cached)
	e.GET("/v1/news", n.List, cached)
	e.GET("/v1/news/latest", n.Latest, cached)
	e.GET("/v1/news/:id", n.Get, cached)
	e.GET("/v1/news/:id/comments", n.ListComments)
	e.GET("/v1/testimonials", t.List, cached)
	e.GET("/v1/tables/max-seats", tbl.MaxSeats, cached)
}
