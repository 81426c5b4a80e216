package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/handler"
	"github.com/mwrona/restaurant-server/internal/middleware"
)

// RegisterComments registers the comment write endpoints.  Reading
// comments is public (see RegisterPublic); writing requires a signed-in
// user, deletion additionally authorizes author-or-admin in the handler.
func RegisterComments(e *echo.Echo, n *handler.NewsHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.POST("/news/:id/comments", n.CreateComment)
	g.DELETE("/news/:id/comments/:commentId", n.DeleteComment)
}
