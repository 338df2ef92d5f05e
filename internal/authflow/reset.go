package authflow

import "time"

// Step is a stage of the password-recovery flow.
type Step string

const (
	// StepAwaitingEmail is the initial stage: no OTP has been dispatched.
	StepAwaitingEmail Step = "awaiting_email"
	// StepAwaitingOtp means an OTP was dispatched and not yet verified.
	StepAwaitingOtp Step = "awaiting_otp"
	// StepAwaitingNewPassword means the OTP was verified.
	StepAwaitingNewPassword Step = "awaiting_new_password"
	// StepComplete means the password was reset.
	StepComplete Step = "complete"
)

// resetFlow tracks one client's password recovery. A step's failure keeps
// the flow where it is; only explicit success advances it.
type resetFlow struct {
	email    string
	step     Step
	resendAt time.Time // resending is allowed once this deadline passes
	inFlight bool      // re-entrancy guard for network operations

	// cleanup removes a completed flow after the post-reset redirect
	// delay. Replaced, never stacked: starting a new flow stops it.
	cleanup *time.Timer
}

func (f *resetFlow) stop() {
	if f.cleanup != nil {
		f.cleanup.Stop()
		f.cleanup = nil
	}
}

// FlowStatus is the externally visible recovery state.
type FlowStatus struct {
	Step            Step   `json:"step"`
	Email           string `json:"email,omitempty"`
	ResendInSeconds int    `json:"resend_in_seconds"`
	CanResend       bool   `json:"can_resend"`
}

func (f *resetFlow) status(now time.Time) FlowStatus {
	remaining := int(f.resendAt.Sub(now).Round(time.Second).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return FlowStatus{
		Step:            f.step,
		Email:           f.email,
		ResendInSeconds: remaining,
		CanResend:       f.step == StepAwaitingOtp && remaining == 0,
	}
}
