package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/auth"
)

// PreferencesHandler exposes durable UI preferences (theme, cookie consent).
type PreferencesHandler struct {
	store auth.ClientStoreInterface
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(store auth.ClientStoreInterface) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// PreferencesRequest updates UI preferences. Empty fields are left as-is.
type PreferencesRequest struct {
	Theme         string `json:"theme" validate:"omitempty,oneof=light dark"`
	CookieConsent string `json:"cookie_consent" validate:"omitempty,oneof=accepted rejected"`
}

// Get returns the stored preferences.
func (h *PreferencesHandler) Get(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	prefs, err := h.store.Preferences(c.Request().Context(), cid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// Update merges and persists preferences.
func (h *PreferencesHandler) Update(c echo.Context) error {
	var req PreferencesRequest
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

	ctx := c.Request().Context()
	prefs, err := h.store.Preferences(ctx, cid)
	if err != nil {
		return httpError(err)
	}
	if req.Theme != "" {
		prefs.Theme = req.Theme
	}
	if req.CookieConsent != "" {
		prefs.CookieConsent = req.CookieConsent
	}
	if err := h.store.SavePreferences(ctx, cid, prefs); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}
