package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/auth"
	"github.com/iliyamo/flavor-house/internal/middleware"
)

// AuthHandler signs admins in and out.
type AuthHandler struct {
	Auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	if a == nil {
		panic("nil auth service passed to NewAuthHandler")
	}
	return &AuthHandler{Auth: a}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login: verify credentials and start a fixed-length session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	sess, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, sess)
	case errors.Is(err, auth.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": auth.Message(err), "code": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.Message(err), "code": err.Error()})
	}
	c.Logger().Errorf("sign-in failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": auth.Message(err)})
}

// Logout: revoke the current session (protected).
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, _ := c.Get(middleware.CtxToken).(string)
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Auth.SignOut(ctx, raw); err != nil {
		if errors.Is(err, auth.ErrSessionEnded) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.Message(err)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: the signed-in admin (protected).
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"admin_id": middleware.AdminID(c),
		"email":    c.Get(middleware.CtxEmail),
		"role":     c.Get(middleware.CtxRole),
	})
}
