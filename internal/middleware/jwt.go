package middleware // middleware holds the echo middleware shared by the routers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxAdminID = "user_id"
	CtxRole    = "role"
	CtxEmail   = "email"
	CtxToken   = "session_token"
)

// SessionVerifier checks a raw session token. auth.Service implements it.
type SessionVerifier interface {
	Verify(ctx context.Context, raw string) (*utils.SessionClaims, error)
}

// JWTAuth requires a live Bearer session token and stores its subject,
// role and email in the echo context.
func JWTAuth(v SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := BearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := v.Verify(c.Request().Context(), raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired, please sign in again"})
			}
			c.Set(CtxAdminID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxToken, raw)
			return next(c)
		}
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}

// AdminID returns the signed-in admin's id, or "" outside JWTAuth.
func AdminID(c echo.Context) string {
	s, _ := c.Get(CtxAdminID).(string)
	return s
}
