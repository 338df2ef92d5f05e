package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/auth"
	"github.com/Shubham-2704/AgriNova/internal/handler"
)

// ClientCookieName is the cookie carrying the signed client identity.
const ClientCookieName = "agrinova_cid"

// ClientIdentity ensures every request carries a verified client ID,
// issuing a fresh signed identity cookie when none is present or the
// existing one fails validation.
func ClientIdentity(ids *auth.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var cid string
			if cookie, err := c.Cookie(ClientCookieName); err == nil {
				cid, _ = ids.ParseClientID(cookie.Value)
			}
			if cid == "" {
				cid = auth.NewClientID()
				signed, err := ids.IssueClientToken(cid)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "issue client identity")
				}
				c.SetCookie(&http.Cookie{
					Name:     ClientCookieName,
					Value:    signed,
					Path:     "/",
					Expires:  time.Now().Add(auth.ClientTokenExpiry),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(handler.ClientIDKey, cid)
			return next(c)
		}
	}
}
