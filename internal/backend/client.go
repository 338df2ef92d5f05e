// Package backend is the single network egress point: a thin client for the
// AgriNova prediction backend. It owns the base URL, attaches the bearer
// token when a session exists, and normalizes error bodies.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Shubham-2704/AgriNova/internal/model"
)

// Client talks to the prediction backend over JSON/HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a backend client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithToken returns a copy of the client that attaches the given bearer
// token to every request. The zero token attaches nothing.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Register creates a new account and returns the session payload.
func (c *Client) Register(ctx context.Context, name, email, password string) (*model.Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var sess model.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Login authenticates with email and password and returns the session payload.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var sess model.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GoogleAuth exchanges a Google credential for a session payload.
func (c *Client) GoogleAuth(ctx context.Context, credential string) (*model.Session, error) {
	body := map[string]string{"token": credential}
	var sess model.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/google", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Profile fetches the profile for the given session token.
func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.WithToken(token).do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type forgotPasswordResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"`
}

// ForgotPassword asks the backend to dispatch a reset OTP. It returns the
// server-declared OTP validity window, or zero when the backend omits it.
func (c *Client) ForgotPassword(ctx context.Context, email string) (time.Duration, error) {
	body := map[string]string{"email": email}
	var resp forgotPasswordResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, &resp); err != nil {
		return 0, err
	}
	return time.Duration(resp.ExpiresIn) * time.Second, nil
}

// VerifyResetOTP checks the OTP entered during password recovery.
func (c *Client) VerifyResetOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-reset-otp", body, nil)
}

// ResetPassword sets a new password after OTP verification.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// Options fetches the valid value sets for the dashboard selectors.
func (c *Client) Options(ctx context.Context) (*model.Options, error) {
	var opts model.Options
	if err := c.do(ctx, http.MethodGet, "/api/options", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Weather fetches the live weather snapshot for a (state, city) pair.
func (c *Client) Weather(ctx context.Context, state, city string) (*model.WeatherSnapshot, error) {
	path := "/api/weather/" + url.PathEscape(state) + "/" + url.PathEscape(city)
	var snap model.WeatherSnapshot
	if err := c.do(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Predict submits farm parameters and returns recommendations ordered by
// suitability descending, as ranked by the backend.
func (c *Client) Predict(ctx context.Context, query model.FarmQuery) ([]model.CropRecommendation, error) {
	var recs []model.CropRecommendation
	if err := c.do(ctx, http.MethodPost, "/api/predict", query, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// PredictAs is Predict with the session token attached, for callers that
// hold the token rather than a bound client.
func (c *Client) PredictAs(ctx context.Context, token string, query model.FarmQuery) ([]model.CropRecommendation, error) {
	return c.WithToken(token).Predict(ctx, query)
}

// SubmitContact relays a contact-form submission.
func (c *Client) SubmitContact(ctx context.Context, msg model.ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contact/submit", msg, nil)
}

// do performs one request against the backend. A non-2xx response is
// returned as *APIError; transport failures are wrapped as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
