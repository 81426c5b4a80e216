package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the auth middleware.  Handlers read them via
// c.Get(); user_id is always a uint64 and role a string when set.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth returns middleware that validates a Bearer access token and
// injects the subject and role claims into the request context.  The
// secret must match the one used when issuing tokens.  Requests without
// a valid token are rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, role, ok := parseBearer(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
			}
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}

// OptionalJWTAuth is the continue-as-anonymous variant used on the
// booking endpoint: a valid token attaches the identity, anything else
// (missing, malformed, expired) lets the request through untouched so
// guests can book without an account.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, role, ok := parseBearer(c, secret); ok {
				c.Set(CtxUserID, uid)
				c.Set(CtxRole, role)
			}
			return next(c)
		}
	}
}

// parseBearer extracts and validates the Authorization header, returning
// the subject and role claims.  ok is false on any failure.
func parseBearer(c echo.Context, secret string) (uint64, string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, "", false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// only HS256 tokens are issued; reject other methods
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", false
	}
	role, _ := claims["role"].(string)
	return uint64(sub), role, true
}
