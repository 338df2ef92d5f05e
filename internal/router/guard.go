package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Shubham-2704/AgriNova/internal/errors"
	"github.com/Shubham-2704/AgriNova/internal/handler"
	"github.com/Shubham-2704/AgriNova/internal/session"
)

// SessionGuard is the authorization gate for protected routes. It resolves
// the session first, so the access decision is never made while the initial
// profile check is still pending, and redirects logged-out clients to login.
func SessionGuard(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cid, ok := c.Get(handler.ClientIDKey).(string)
			if !ok || cid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing client identity",
					Code:  "NO_CLIENT_IDENTITY",
				})
			}
			state := sessions.Resolve(c.Request().Context(), cid)
			if !state.LoggedIn() {
				c.Response().Header().Set("Location", "/login")
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			return next(c)
		}
	}
}
