// Package session is the single source of truth for "is someone logged in".
package session

import (
	"context"
	"sync"

	"github.com/Shubham-2704/AgriNova/internal/model"
)

// ProfileFetcher fetches the user profile for a stored token.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*model.User, error)
}

// TokenStore persists the durable session token per client.
type TokenStore interface {
	Token(ctx context.Context, clientID string) (string, error)
	SaveToken(ctx context.Context, clientID, token string) error
	ClearToken(ctx context.Context, clientID string) error
}

// State is the session state visible to consumers. Loading true means
// "unknown": the route guard must not treat it as unauthenticated.
type State struct {
	User    *model.User `json:"user"`
	Loading bool        `json:"loading"`
}

// LoggedIn reports whether the state is a resolved, authenticated session.
func (s State) LoggedIn() bool {
	return !s.Loading && s.User != nil
}

type entry struct {
	ready chan struct{} // closed once the initial check resolved
	state State
}

// Store owns session lifecycle per client: load-on-start, update-on-login,
// clear-on-logout. The profile is always refetched from the backend; only
// the token is trusted from storage.
type Store struct {
	tokens   TokenStore
	profiles ProfileFetcher

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a session store.
func New(tokens TokenStore, profiles ProfileFetcher) *Store {
	return &Store{
		tokens:   tokens,
		profiles: profiles,
		entries:  make(map[string]*entry),
	}
}

// Resolve returns the session state for a client, performing the initial
// token check and profile fetch exactly once. A failed profile fetch clears
// the durable token and degrades to logged-out; it is never fatal.
func (s *Store) Resolve(ctx context.Context, clientID string) State {
	s.mu.Lock()
	e, ok := s.entries[clientID]
	if ok {
		s.mu.Unlock()
		select {
		case <-e.ready:
			return s.stateOf(e)
		case <-ctx.Done():
			return State{Loading: true}
		}
	}
	e = &entry{ready: make(chan struct{}), state: State{Loading: true}}
	s.entries[clientID] = e
	s.mu.Unlock()

	state := s.initialize(ctx, clientID)

	s.mu.Lock()
	e.state = state
	close(e.ready)
	s.mu.Unlock()
	return state
}

func (s *Store) initialize(ctx context.Context, clientID string) State {
	token, err := s.tokens.Token(ctx, clientID)
	if err != nil || token == "" {
		return State{}
	}
	user, err := s.profiles.Profile(ctx, token)
	if err != nil {
		// Expired or invalid token: forget it and start logged out.
		_ = s.tokens.ClearToken(ctx, clientID)
		return State{}
	}
	return State{User: user}
}

// Current reports the session state without triggering the initial check.
// Before the first Resolve it reports Loading.
func (s *Store) Current(clientID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[clientID]
	if !ok {
		return State{Loading: true}
	}
	select {
	case <-e.ready:
		return e.state
	default:
		return State{Loading: true}
	}
}

// Login installs a fresh session: the token is persisted and the state
// becomes authenticated immediately.
func (s *Store) Login(ctx context.Context, clientID string, sess *model.Session) error {
	if err := s.tokens.SaveToken(ctx, clientID, sess.Token); err != nil {
		return err
	}
	s.put(clientID, State{User: sess.UserOf()})
	return nil
}

// Logout clears the user and persisted token. It is a local operation, not a
// network call, and calling it while already logged out is a no-op.
func (s *Store) Logout(ctx context.Context, clientID string) error {
	if err := s.tokens.ClearToken(ctx, clientID); err != nil {
		return err
	}
	s.put(clientID, State{})
	return nil
}

func (s *Store) put(clientID string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &entry{ready: make(chan struct{}), state: state}
	close(e.ready)
	s.entries[clientID] = e
}

func (s *Store) stateOf(e *entry) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.state
}
