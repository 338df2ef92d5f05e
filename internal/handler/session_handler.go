package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/dashboard"
	"github.com/Shubham-2704/AgriNova/internal/session"
	"github.com/Shubham-2704/AgriNova/internal/toast"
)

// SessionHandler exposes the session lifecycle.
type SessionHandler struct {
	sessions  *session.Store
	dashboard *dashboard.Orchestrator
	toasts    *toast.Queue
	tr        func(key string) string
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Store, dash *dashboard.Orchestrator, toasts *toast.Queue, tr func(string) string) *SessionHandler {
	return &SessionHandler{sessions: sessions, dashboard: dash, toasts: toasts, tr: tr}
}

// Get resolves and returns the session state. The initial token check and
// profile fetch happen here exactly once per client; until then consumers
// see loading=true and must treat it as unknown.
func (h *SessionHandler) Get(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	state := h.sessions.Resolve(c.Request().Context(), cid)
	return c.JSON(http.StatusOK, state)
}

// Logout clears the session. Purely client-local: no backend call, and a
// second logout is a harmless no-op.
func (h *SessionHandler) Logout(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	wasLoggedIn := h.sessions.Current(cid).LoggedIn()
	if err := h.sessions.Logout(c.Request().Context(), cid); err != nil {
		return httpError(err)
	}
	h.dashboard.Reset(cid)
	if wasLoggedIn {
		h.toasts.Push(cid, toast.Success, h.tr("toast.logoutSuccess"))
	}
	return c.JSON(http.StatusOK, echo.Map{"redirect": "/"})
}
