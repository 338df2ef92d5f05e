package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/contact"
)

// ContactHandler relays contact-form submissions to the backend.
type ContactHandler struct {
	service *contact.Service
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactRequest mirrors the contact form with its local validation bounds.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,len=10,numeric"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// Submit validates and relays the message.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cid, err := clientID(c)
	if err != nil {
		return err
	}

	if err := h.service.Submit(c.Request().Context(), cid, contact.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "message sent"})
}
