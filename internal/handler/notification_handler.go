package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Shubham-2704/AgriNova/internal/errors"
	"github.com/Shubham-2704/AgriNova/internal/toast"
)

// NotificationHandler exposes the toast surface.
type NotificationHandler struct {
	toasts *toast.Queue
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(toasts *toast.Queue) *NotificationHandler {
	return &NotificationHandler{toasts: toasts}
}

// List returns the client's live notifications in insertion order.
func (h *NotificationHandler) List(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": h.toasts.Active(cid)})
}

// Dismiss removes one notification by ID.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	if !h.toasts.Dismiss(cid, c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Error: "notification not found",
			Code:  "NOT_FOUND",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
