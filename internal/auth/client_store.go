package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shubham-2704/AgriNova/internal/cache"
	"github.com/Shubham-2704/AgriNova/internal/model"
)

const (
	sessionTokenKeyPrefix = "session_token:"
	resetEmailKeyPrefix   = "reset_email:"
	preferencesKeyPrefix  = "prefs:"
)

// resetEmailTTL bounds the lifetime of the ephemeral reset email. It stands
// in for tab-scoped storage: long enough to finish the OTP flow, short
// enough not to survive a real break in the flow.
const resetEmailTTL = 15 * time.Minute

// ClientStoreInterface defines the interface for per-client state storage.
// The session token is the only durable session artifact; the reset email is
// ephemeral; preferences are durable but outside the session contract.
type ClientStoreInterface interface {
	Token(ctx context.Context, clientID string) (string, error)
	SaveToken(ctx context.Context, clientID, token string) error
	ClearToken(ctx context.Context, clientID string) error
	ResetEmail(ctx context.Context, clientID string) (string, error)
	SaveResetEmail(ctx context.Context, clientID, email string) error
	ClearResetEmail(ctx context.Context, clientID string) error
	Preferences(ctx context.Context, clientID string) (model.Preferences, error)
	SavePreferences(ctx context.Context, clientID string, prefs model.Preferences) error
}

// ClientStore handles per-client state in Redis.
type ClientStore struct {
	cache *cache.Client
}

// Ensure ClientStore implements ClientStoreInterface
var _ ClientStoreInterface = (*ClientStore)(nil)

// NewClientStore creates a new client store.
func NewClientStore(cache *cache.Client) *ClientStore {
	return &ClientStore{cache: cache}
}

// Token returns the durable session token for a client, or "" when none
// exists.
func (s *ClientStore) Token(ctx context.Context, clientID string) (string, error) {
	data, err := s.cache.Get(ctx, sessionTokenKeyPrefix+clientID)
	if err != nil || data == nil {
		return "", nil
	}
	return string(data), nil
}

// SaveToken persists the session token with no expiry. Token lifetime is
// governed by the backend, not by storage.
func (s *ClientStore) SaveToken(ctx context.Context, clientID, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store empty token")
	}
	return s.cache.Set(ctx, sessionTokenKeyPrefix+clientID, []byte(token), 0)
}

// ClearToken removes the session token.
func (s *ClientStore) ClearToken(ctx context.Context, clientID string) error {
	return s.cache.Delete(ctx, sessionTokenKeyPrefix+clientID)
}

// ResetEmail returns the ephemeral password-reset email, or "" when the flow
// has no durable record.
func (s *ClientStore) ResetEmail(ctx context.Context, clientID string) (string, error) {
	data, err := s.cache.Get(ctx, resetEmailKeyPrefix+clientID)
	if err != nil || data == nil {
		return "", nil
	}
	return string(data), nil
}

// SaveResetEmail stores the reset email with a short TTL.
func (s *ClientStore) SaveResetEmail(ctx context.Context, clientID, email string) error {
	return s.cache.Set(ctx, resetEmailKeyPrefix+clientID, []byte(email), resetEmailTTL)
}

// ClearResetEmail removes the reset email.
func (s *ClientStore) ClearResetEmail(ctx context.Context, clientID string) error {
	return s.cache.Delete(ctx, resetEmailKeyPrefix+clientID)
}

// Preferences returns stored UI preferences, zero-valued when absent.
func (s *ClientStore) Preferences(ctx context.Context, clientID string) (model.Preferences, error) {
	var prefs model.Preferences
	data, err := s.cache.Get(ctx, preferencesKeyPrefix+clientID)
	if err != nil || data == nil {
		return prefs, nil
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return model.Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences persists UI preferences with no expiry.
func (s *ClientStore) SavePreferences(ctx context.Context, clientID string, prefs model.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return s.cache.Set(ctx, preferencesKeyPrefix+clientID, payload, 0)
}
