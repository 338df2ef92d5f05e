// Package authflow orchestrates login, signup, Google sign-in and the
// multi-step password-recovery protocol.
package authflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/model"
	"github.com/Shubham-2704/AgriNova/internal/toast"
)

// Local validation errors. These are pre-flight guards: when one fires, no
// network call is made.
var (
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWeakPassword is returned when the strength predicate fails.
	ErrWeakPassword = errors.New("password does not meet the strength requirements")
	// ErrTermsNotAccepted is returned when signup terms are not accepted.
	ErrTermsNotAccepted = errors.New("terms and privacy policy must be accepted")
	// ErrOTPFormat is returned when the OTP is not exactly 6 digits.
	ErrOTPFormat = errors.New("OTP must be exactly 6 digits")
	// ErrResendNotReady is returned when resend is requested before the countdown elapsed.
	ErrResendNotReady = errors.New("resend is not available yet")
	// ErrRequestInFlight is returned when a recovery request is already running.
	ErrRequestInFlight = errors.New("a request is already in progress")
	// ErrNoActiveFlow is returned when no password-recovery flow exists for the client.
	ErrNoActiveFlow = errors.New("no active password reset flow")
)

// API is the slice of the backend client the controller depends on.
type API interface {
	Register(ctx context.Context, name, email, password string) (*model.Session, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	GoogleAuth(ctx context.Context, credential string) (*model.Session, error)
	ForgotPassword(ctx context.Context, email string) (time.Duration, error)
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// SessionWriter installs a fresh session after a successful auth call.
type SessionWriter interface {
	Login(ctx context.Context, clientID string, sess *model.Session) error
}

// ResetEmailStore persists the recovery email across the page transition
// between the forgot-password and reset-password steps.
type ResetEmailStore interface {
	ResetEmail(ctx context.Context, clientID string) (string, error)
	SaveResetEmail(ctx context.Context, clientID, email string) error
	ClearResetEmail(ctx context.Context, clientID string) error
}

// Notifier surfaces success and error feedback.
type Notifier interface {
	Push(clientID string, kind toast.Kind, message string) toast.Toast
}

// Controller runs every auth operation with the same shape: call the
// backend, update the session store on success, and mirror the outcome to
// the toast surface.
type Controller struct {
	api      API
	sessions SessionWriter
	store    ResetEmailStore
	toasts   Notifier
	tr       func(key string) string

	resendDefault time.Duration
	redirectDelay time.Duration
	now           func() time.Time

	mu    sync.Mutex
	flows map[string]*resetFlow
}

// New creates an auth flow controller. tr resolves toast message keys;
// resendDefault seeds the OTP countdown when the backend omits expiresIn.
func New(api API, sessions SessionWriter, store ResetEmailStore, toasts Notifier, tr func(string) string, resendDefault, redirectDelay time.Duration) *Controller {
	return &Controller{
		api:           api,
		sessions:      sessions,
		store:         store,
		toasts:        toasts,
		tr:            tr,
		resendDefault: resendDefault,
		redirectDelay: redirectDelay,
		now:           time.Now,
		flows:         make(map[string]*resetFlow),
	}
}

// Login authenticates with email and password.
func (c *Controller) Login(ctx context.Context, clientID, email, password string) (*model.Session, error) {
	sess, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.loginError")))
		return nil, err
	}
	if err := c.sessions.Login(ctx, clientID, sess); err != nil {
		c.toasts.Push(clientID, toast.Error, c.tr("errors.generic"))
		return nil, err
	}
	c.toasts.Push(clientID, toast.Success, c.tr("toast.loginSuccess"))
	return sess, nil
}

// SignupInput is the raw signup form.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Signup registers a new account. Confirmation mismatch, unaccepted terms
// and a weak password fail locally before any network call.
func (c *Controller) Signup(ctx context.Context, clientID string, in SignupInput) (*model.Session, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !in.AcceptTerms {
		return nil, ErrTermsNotAccepted
	}
	if !StrongPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	sess, err := c.api.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.signupError")))
		return nil, err
	}
	if err := c.sessions.Login(ctx, clientID, sess); err != nil {
		c.toasts.Push(clientID, toast.Error, c.tr("errors.generic"))
		return nil, err
	}
	c.toasts.Push(clientID, toast.Success, c.tr("toast.signupSuccess"))
	return sess, nil
}

// GoogleAuth exchanges a Google credential for a session.
func (c *Controller) GoogleAuth(ctx context.Context, clientID, credential string) (*model.Session, error) {
	sess, err := c.api.GoogleAuth(ctx, credential)
	if err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.googleError")))
		return nil, err
	}
	if err := c.sessions.Login(ctx, clientID, sess); err != nil {
		c.toasts.Push(clientID, toast.Error, c.tr("errors.generic"))
		return nil, err
	}
	c.toasts.Push(clientID, toast.Success, c.tr("toast.googleSuccess"))
	return sess, nil
}

// RequestPasswordReset dispatches an OTP and moves the flow to AwaitingOtp.
// The resend countdown is seeded from the server-declared expiry, with a
// configured default when the backend omits it.
func (c *Controller) RequestPasswordReset(ctx context.Context, clientID, email string) (FlowStatus, error) {
	if err := c.enterFlight(clientID); err != nil {
		return FlowStatus{}, err
	}
	defer c.leaveFlight(clientID)

	expiresIn, err := c.api.ForgotPassword(ctx, email)
	if err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.otpSendError")))
		return c.Status(ctx, clientID), err
	}
	if expiresIn <= 0 {
		expiresIn = c.resendDefault
	}
	if err := c.store.SaveResetEmail(ctx, clientID, email); err != nil {
		return c.Status(ctx, clientID), err
	}

	c.mu.Lock()
	if old := c.flows[clientID]; old != nil {
		old.stop()
	}
	flow := &resetFlow{
		email:    email,
		step:     StepAwaitingOtp,
		resendAt: c.now().Add(expiresIn),
	}
	c.flows[clientID] = flow
	status := flow.status(c.now())
	c.mu.Unlock()

	c.toasts.Push(clientID, toast.Success, c.tr("toast.otpSent"))
	return status, nil
}

// VerifyOTP checks the entered code. A malformed code fails locally; a
// backend rejection keeps the flow in AwaitingOtp with the countdown intact.
func (c *Controller) VerifyOTP(ctx context.Context, clientID, code string) (FlowStatus, error) {
	if !ValidOTP(code) {
		return c.Status(ctx, clientID), ErrOTPFormat
	}

	flow, err := c.flowFor(ctx, clientID, StepAwaitingOtp)
	if err != nil {
		return c.Status(ctx, clientID), err
	}
	if err := c.enterFlight(clientID); err != nil {
		return c.Status(ctx, clientID), err
	}
	defer c.leaveFlight(clientID)

	if err := c.api.VerifyResetOTP(ctx, flow.email, code); err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.otpInvalid")))
		return c.Status(ctx, clientID), err
	}

	c.mu.Lock()
	flow.step = StepAwaitingNewPassword
	status := flow.status(c.now())
	c.mu.Unlock()

	c.toasts.Push(clientID, toast.Success, c.tr("toast.otpVerified"))
	return status, nil
}

// ResendOTP re-dispatches the code. It is permitted only after the countdown
// elapsed, and the countdown is replaced, never stacked.
func (c *Controller) ResendOTP(ctx context.Context, clientID string) (FlowStatus, error) {
	flow, err := c.flowFor(ctx, clientID, StepAwaitingOtp)
	if err != nil {
		return c.Status(ctx, clientID), err
	}

	c.mu.Lock()
	if c.now().Before(flow.resendAt) {
		c.mu.Unlock()
		return c.Status(ctx, clientID), ErrResendNotReady
	}
	c.mu.Unlock()

	if err := c.enterFlight(clientID); err != nil {
		return c.Status(ctx, clientID), err
	}
	defer c.leaveFlight(clientID)

	expiresIn, err := c.api.ForgotPassword(ctx, flow.email)
	if err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.otpSendError")))
		return c.Status(ctx, clientID), err
	}
	if expiresIn <= 0 {
		expiresIn = c.resendDefault
	}

	c.mu.Lock()
	flow.resendAt = c.now().Add(expiresIn)
	status := flow.status(c.now())
	c.mu.Unlock()

	c.toasts.Push(clientID, toast.Success, c.tr("toast.otpSent"))
	return status, nil
}

// ResetResult reports where and when to navigate after a successful reset.
// The delay keeps the success toast visible before the page transitions.
type ResetResult struct {
	RedirectTo    string        `json:"redirect_to"`
	RedirectAfter time.Duration `json:"redirect_after_ms"`
}

// ResetPassword sets the new password. Strength and confirmation are checked
// locally first; on success the ephemeral email is cleared and the flow is
// complete.
func (c *Controller) ResetPassword(ctx context.Context, clientID, newPassword, confirmPassword string) (ResetResult, error) {
	if newPassword != confirmPassword {
		return ResetResult{}, ErrPasswordMismatch
	}
	if !StrongPassword(newPassword) {
		return ResetResult{}, ErrWeakPassword
	}

	flow, err := c.flowFor(ctx, clientID, StepAwaitingNewPassword)
	if err != nil {
		return ResetResult{}, err
	}
	if err := c.enterFlight(clientID); err != nil {
		return ResetResult{}, err
	}
	defer c.leaveFlight(clientID)

	if err := c.api.ResetPassword(ctx, flow.email, newPassword); err != nil {
		c.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, c.tr("toast.resetError")))
		return ResetResult{}, err
	}

	_ = c.store.ClearResetEmail(ctx, clientID)

	c.mu.Lock()
	flow.step = StepComplete
	flow.stop()
	flow.cleanup = time.AfterFunc(c.redirectDelay, func() {
		c.mu.Lock()
		if c.flows[clientID] == flow {
			delete(c.flows, clientID)
		}
		c.mu.Unlock()
	})
	c.mu.Unlock()

	c.toasts.Push(clientID, toast.Success, c.tr("toast.resetSuccess"))
	return ResetResult{RedirectTo: "/login?reset=success", RedirectAfter: c.redirectDelay}, nil
}

// AbandonReset drops the recovery flow and its ephemeral record, e.g. when
// the user navigates away.
func (c *Controller) AbandonReset(ctx context.Context, clientID string) {
	c.mu.Lock()
	if flow := c.flows[clientID]; flow != nil {
		flow.stop()
		delete(c.flows, clientID)
	}
	c.mu.Unlock()
	_ = c.store.ClearResetEmail(ctx, clientID)
}

// Status reports the current recovery state. A client with neither an
// in-memory flow nor an ephemeral email record is back at AwaitingEmail.
func (c *Controller) Status(ctx context.Context, clientID string) FlowStatus {
	c.mu.Lock()
	flow := c.flows[clientID]
	now := c.now()
	c.mu.Unlock()

	if flow != nil {
		return flow.status(now)
	}
	email, err := c.store.ResetEmail(ctx, clientID)
	if err != nil || email == "" {
		return FlowStatus{Step: StepAwaitingEmail}
	}
	// An ephemeral record survived a page transition but the in-memory
	// flow did not (e.g. process restart): the email is recoverable and
	// the countdown has elapsed.
	return FlowStatus{Step: StepAwaitingOtp, Email: email, CanResend: true}
}

// flowFor returns the client's flow when it is at the wanted step,
// rebuilding it from the ephemeral record when possible.
func (c *Controller) flowFor(ctx context.Context, clientID string, want Step) (*resetFlow, error) {
	c.mu.Lock()
	flow := c.flows[clientID]
	c.mu.Unlock()
	if flow != nil {
		if flow.step != want {
			return nil, ErrNoActiveFlow
		}
		return flow, nil
	}

	if want != StepAwaitingOtp {
		return nil, ErrNoActiveFlow
	}
	email, err := c.store.ResetEmail(ctx, clientID)
	if err != nil || email == "" {
		return nil, ErrNoActiveFlow
	}
	flow = &resetFlow{email: email, step: StepAwaitingOtp, resendAt: c.now()}
	c.mu.Lock()
	c.flows[clientID] = flow
	c.mu.Unlock()
	return flow, nil
}

func (c *Controller) enterFlight(clientID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	flow := c.flows[clientID]
	if flow == nil {
		flow = &resetFlow{step: StepAwaitingEmail}
		c.flows[clientID] = flow
	}
	if flow.inFlight {
		return ErrRequestInFlight
	}
	flow.inFlight = true
	return nil
}

func (c *Controller) leaveFlight(clientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if flow := c.flows[clientID]; flow != nil {
		flow.inFlight = false
	}
}
