package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ukydev/fleet-rental/internal/auth"
	"github.com/ukydev/fleet-rental/internal/metrics"
	"github.com/ukydev/fleet-rental/internal/middleware"
	"github.com/ukydev/fleet-rental/internal/models"
)

// Authenticator checks credentials and issues tokens.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	accounts Authenticator
	metrics  *metrics.Metrics
}

// NewAuthHandler creates a new authentication handler. m may be nil.
func NewAuthHandler(accounts Authenticator, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{accounts: accounts, metrics: m}
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}
	if req.Mail == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Mail and password are required")
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.Inc()
	}
	resp, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		h.fail(err)
		return err
	}

	middleware.Logger(c).WithField("role", resp.Role).Info("login succeeded")
	return c.JSON(http.StatusOK, resp)
}

// Me returns the claims of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.GetUserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User context not found")
	}
	return c.JSON(http.StatusOK, claims)
}

func (h *AuthHandler) fail(err error) {
	if h.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.metrics.AuthFailures.WithLabelValues("invalid_credentials").Inc()
	case errors.Is(err, auth.ErrUserInactive):
		h.metrics.AuthFailures.WithLabelValues("inactive").Inc()
	}
}
