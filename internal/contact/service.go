// Package contact relays contact-form submissions to the backend and
// mirrors the outcome to the toast surface.
package contact

import (
	"context"

	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/model"
	"github.com/Shubham-2704/AgriNova/internal/toast"
)

// API is the slice of the backend client the service depends on.
type API interface {
	SubmitContact(ctx context.Context, msg model.ContactMessage) error
}

// Notifier surfaces success and error feedback.
type Notifier interface {
	Push(clientID string, kind toast.Kind, message string) toast.Toast
}

// Input is a validated contact submission.
type Input struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service relays contact messages.
type Service struct {
	api    API
	toasts Notifier
	tr     func(key string) string
}

// NewService creates a contact service.
func NewService(api API, toasts Notifier, tr func(string) string) *Service {
	return &Service{api: api, toasts: toasts, tr: tr}
}

// Submit relays one message and surfaces a toast either way.
func (s *Service) Submit(ctx context.Context, clientID string, in Input) error {
	err := s.api.SubmitContact(ctx, model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	})
	if err != nil {
		s.toasts.Push(clientID, toast.Error, backend.ErrorMessage(err, s.tr("toast.contactError")))
		return err
	}
	s.toasts.Push(clientID, toast.Success, s.tr("toast.contactSuccess"))
	return nil
}
