package handler // handler defines the HTTP handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/middleware"
	"github.com/mwrona/restaurant-server/internal/service"
)

// getUserID extracts the authenticated user id stored by the JWT
// middleware.  Returns an error when the request is anonymous.
func getUserID(c echo.Context) (uint64, error) {
	if uid, ok := c.Get(middleware.CtxUserID).(uint64); ok && uid != 0 {
		return uid, nil
	}
	return 0, errors.New("no user in context")
}

// identityFrom converts the middleware context values into the explicit
// optional identity the service layer expects.  nil means anonymous.
func identityFrom(c echo.Context) *service.Identity {
	uid, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || uid == 0 {
		return nil
	}
	role, _ := c.Get(middleware.CtxRole).(string)
	return &service.Identity{UserID: uid, Role: role}
}
