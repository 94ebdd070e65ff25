package rest

import (
	"context"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"shopSense/pkg/logger"
)

type (
	AuthHandler struct {
		sessionService SessionService
	}

	SessionService interface {
		RegisterSession(ctx context.Context, userID, token string) error
		RevokeSession(ctx context.Context, token string) error
	}
)

func NewAuthHandler(svc SessionService) *AuthHandler {
	return &AuthHandler{
		sessionService: svc,
	}
}

// Login activates the caller's bearer JWT as a live session so the
// revocation-aware middleware accepts it on subsequent requests. The JWT
// itself comes from the identity provider.
func (h *AuthHandler) Login(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	token, ok := c.Get("token").(string)
	if !ok || token == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.sessionService.RegisterSession(c.Request().Context(), userID, token); err != nil {
		logger.Error("failed to register session", "user_id", userID, "error", err)
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"user_id": userID,
	}))
}

// Logout revokes the caller's session token.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	token, ok := c.Get("token").(string)
	if !ok || token == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.sessionService.RevokeSession(c.Request().Context(), token); err != nil {
		logger.Error("failed to revoke session", "user_id", userID, "error", err)
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"revoked": true,
	}))
}
