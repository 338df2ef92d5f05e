package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shubham-2704/AgriNova/internal/authflow"
	"github.com/Shubham-2704/AgriNova/internal/backend"
	apperrors "github.com/Shubham-2704/AgriNova/internal/errors"
	"github.com/Shubham-2704/AgriNova/internal/model"
)

// AuthHandler handles login, signup, Google sign-in and password recovery.
type AuthHandler struct {
	flows *authflow.Controller
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(flows *authflow.Controller) *AuthHandler {
	return &AuthHandler{flows: flows}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	AcceptTerms     bool   `json:"accept_terms"`
}

// GoogleAuthRequest carries the Google credential token.
type GoogleAuthRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// ForgotPasswordRequest starts the password recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest carries the entered OTP digits.
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// ResetPasswordRequest sets the new password.
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SessionResponse is returned after a successful auth operation.
type SessionResponse struct {
	User     *model.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// Login authenticates with email and password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
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

	sess, err := h.flows.Login(c.Request().Context(), cid, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, SessionResponse{User: sess.UserOf(), Redirect: "/dashboard"})
}

// Signup registers a new account.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
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

	sess, err := h.flows.Signup(c.Request().Context(), cid, authflow.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AcceptTerms:     req.AcceptTerms,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, SessionResponse{User: sess.UserOf(), Redirect: "/dashboard"})
}

// Google exchanges a Google credential for a session.
func (h *AuthHandler) Google(c echo.Context) error {
	var req GoogleAuthRequest
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

	sess, err := h.flows.GoogleAuth(c.Request().Context(), cid, req.Credential)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, SessionResponse{User: sess.UserOf(), Redirect: "/dashboard"})
}

// ForgotPassword dispatches a reset OTP and returns the flow status.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
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

	status, err := h.flows.RequestPasswordReset(c.Request().Context(), cid, req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// otpErrorResponse tells the client to clear the entered digits while the
// flow and countdown stay where they are.
type otpErrorResponse struct {
	apperrors.ErrorResponse
	ClearDigits bool                `json:"clear_digits"`
	Flow        authflow.FlowStatus `json:"flow"`
}

// VerifyOTP checks the entered code and advances the flow on success.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
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

	status, err := h.flows.VerifyOTP(c.Request().Context(), cid, req.OTP)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			he := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(he.StatusCode, otpErrorResponse{
				ErrorResponse: apperrors.ErrorResponse{Error: he.Message, Code: "OTP_REJECTED"},
				ClearDigits:   true,
				Flow:          status,
			})
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// ResendOTP re-dispatches the code once the countdown elapsed.
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}

	status, err := h.flows.ResendOTP(c.Request().Context(), cid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// ResetPassword sets the new password and schedules the login redirect.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
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

	result, err := h.flows.ResetPassword(c.Request().Context(), cid, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"redirect_to":       result.RedirectTo,
		"redirect_after_ms": result.RedirectAfter.Milliseconds(),
	})
}

// ResetStatus reports the current recovery flow state.
func (h *AuthHandler) ResetStatus(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.flows.Status(c.Request().Context(), cid))
}

// AbandonReset drops the recovery flow, e.g. on navigation away.
func (h *AuthHandler) AbandonReset(c echo.Context) error {
	cid, err := clientID(c)
	if err != nil {
		return err
	}
	h.flows.AbandonReset(c.Request().Context(), cid)
	return c.NoContent(http.StatusNoContent)
}
