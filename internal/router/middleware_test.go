package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-2704/AgriNova/internal/auth"
	"github.com/Shubham-2704/AgriNova/internal/handler"
	"github.com/Shubham-2704/AgriNova/internal/model"
	"github.com/Shubham-2704/AgriNova/internal/session"
)

func echoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okNext(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestClientIdentity(t *testing.T) {
	ids := auth.NewIdentityService("test-secret")
	mw := ClientIdentity(ids)

	t.Run("issues a signed cookie when none is present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := echoContext(req)

		err := mw(okNext)(c)

		require.NoError(t, err)
		cid, ok := c.Get(handler.ClientIDKey).(string)
		require.True(t, ok)
		assert.NotEmpty(t, cid)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, ClientCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		parsed, err := ids.ParseClientID(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, cid, parsed)
	})

	t.Run("reuses a valid cookie without reissuing", func(t *testing.T) {
		cid := auth.NewClientID()
		signed, err := ids.IssueClientToken(cid)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: signed})
		c, rec := echoContext(req)

		require.NoError(t, mw(okNext)(c))

		assert.Equal(t, cid, c.Get(handler.ClientIDKey))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("a tampered cookie is replaced with a fresh identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: "not-a-jwt"})
		c, rec := echoContext(req)

		require.NoError(t, mw(okNext)(c))

		cid, ok := c.Get(handler.ClientIDKey).(string)
		require.True(t, ok)
		assert.NotEmpty(t, cid)
		require.Len(t, rec.Result().Cookies(), 1)
	})

	t.Run("a cookie signed with another secret is rejected", func(t *testing.T) {
		other := auth.NewIdentityService("other-secret")
		signed, err := other.IssueClientToken(auth.NewClientID())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: signed})
		c, rec := echoContext(req)

		require.NoError(t, mw(okNext)(c))

		require.Len(t, rec.Result().Cookies(), 1)
		parsed, err := ids.ParseClientID(rec.Result().Cookies()[0].Value)
		require.NoError(t, err)
		assert.Equal(t, c.Get(handler.ClientIDKey), parsed)
	})
}

// stubTokens is a TokenStore with a fixed token per client.
type stubTokens struct {
	tokens map[string]string
}

func (s stubTokens) Token(ctx context.Context, clientID string) (string, error) {
	return s.tokens[clientID], nil
}

func (s stubTokens) SaveToken(ctx context.Context, clientID, token string) error {
	s.tokens[clientID] = token
	return nil
}

func (s stubTokens) ClearToken(ctx context.Context, clientID string) error {
	delete(s.tokens, clientID)
	return nil
}

type stubProfiles struct {
	user *model.User
}

func (s stubProfiles) Profile(ctx context.Context, token string) (*model.User, error) {
	return s.user, nil
}

func TestSessionGuard(t *testing.T) {
	t.Run("missing client identity", func(t *testing.T) {
		sessions := session.New(stubTokens{tokens: map[string]string{}}, stubProfiles{})
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		c, _ := echoContext(req)

		err := SessionGuard(sessions)(okNext)(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("logged out client is redirected to login", func(t *testing.T) {
		sessions := session.New(stubTokens{tokens: map[string]string{}}, stubProfiles{})
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		c, rec := echoContext(req)
		c.Set(handler.ClientIDKey, "client-1")

		err := SessionGuard(sessions)(okNext)(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("logged in client passes through", func(t *testing.T) {
		sessions := session.New(
			stubTokens{tokens: map[string]string{"client-1": "tok"}},
			stubProfiles{user: &model.User{ID: "u1", Name: "Farmer"}},
		)
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		c, rec := echoContext(req)
		c.Set(handler.ClientIDKey, "client-1")

		err := SessionGuard(sessions)(okNext)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	mw := RateLimit(1, 2)

	hit := func(addr string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		c, _ := echoContext(req)
		return mw(okNext)(c)
	}

	// Burst of 2 is allowed, the third request is throttled.
	assert.NoError(t, hit("10.0.0.1:1234"))
	assert.NoError(t, hit("10.0.0.1:1234"))
	err := hit("10.0.0.1:1234")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)

	// Another IP has its own bucket.
	assert.NoError(t, hit("10.0.0.2:1234"))
}
