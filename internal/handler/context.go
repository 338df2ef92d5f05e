package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Shubham-2704/AgriNova/internal/errors"
)

// ClientIDKey is the echo context key under which the router stores the
// verified client ID.
const ClientIDKey = "clientID"

func clientID(c echo.Context) (string, error) {
	id, ok := c.Get(ClientIDKey).(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "missing client identity",
			Code:  "NO_CLIENT_IDENTITY",
		})
	}
	return id, nil
}

func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
