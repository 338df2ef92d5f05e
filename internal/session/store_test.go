package session

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/model"
)

// MockTokenStore is a mock implementation of TokenStore.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Token(ctx context.Context, clientID string) (string, error) {
	args := m.Called(ctx, clientID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) SaveToken(ctx context.Context, clientID, token string) error {
	args := m.Called(ctx, clientID, token)
	return args.Error(0)
}

func (m *MockTokenStore) ClearToken(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockProfileFetcher is a mock implementation of ProfileFetcher.
type MockProfileFetcher struct {
	mock.Mock
}

func (m *MockProfileFetcher) Profile(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

const clientID = "client-1"

func TestResolve(t *testing.T) {
	t.Run("no stored token resolves to logged out", func(t *testing.T) {
		tokens := new(MockTokenStore)
		profiles := new(MockProfileFetcher)
		tokens.On("Token", mock.Anything, clientID).Return("", nil)

		store := New(tokens, profiles)
		state := store.Resolve(context.Background(), clientID)

		assert.False(t, state.Loading)
		assert.Nil(t, state.User)
		assert.False(t, state.LoggedIn())
		profiles.AssertNotCalled(t, "Profile")
	})

	t.Run("stored token is exchanged for a fresh profile", func(t *testing.T) {
		tokens := new(MockTokenStore)
		profiles := new(MockProfileFetcher)
		user := &model.User{ID: "u1", Name: "Farmer", Email: "farmer@example.com"}
		tokens.On("Token", mock.Anything, clientID).Return("tok", nil)
		profiles.On("Profile", mock.Anything, "tok").Return(user, nil)

		store := New(tokens, profiles)
		state := store.Resolve(context.Background(), clientID)

		assert.True(t, state.LoggedIn())
		assert.Equal(t, user, state.User)
	})

	t.Run("invalid token is cleared and degrades to logged out", func(t *testing.T) {
		tokens := new(MockTokenStore)
		profiles := new(MockProfileFetcher)
		tokens.On("Token", mock.Anything, clientID).Return("stale", nil)
		tokens.On("ClearToken", mock.Anything, clientID).Return(nil)
		profiles.On("Profile", mock.Anything, "stale").
			Return(nil, &backend.APIError{StatusCode: 401, Message: "Invalid token"})

		store := New(tokens, profiles)
		state := store.Resolve(context.Background(), clientID)

		assert.False(t, state.Loading)
		assert.False(t, state.LoggedIn())
		tokens.AssertCalled(t, "ClearToken", mock.Anything, clientID)
	})

	t.Run("the initial check runs exactly once per client", func(t *testing.T) {
		var fetches int32
		tokens := new(MockTokenStore)
		profiles := new(MockProfileFetcher)
		tokens.On("Token", mock.Anything, clientID).Return("tok", nil)
		profiles.On("Profile", mock.Anything, "tok").
			Run(func(args mock.Arguments) { atomic.AddInt32(&fetches, 1) }).
			Return(&model.User{ID: "u1"}, nil)

		store := New(tokens, profiles)
		store.Resolve(context.Background(), clientID)
		store.Resolve(context.Background(), clientID)

		assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	})
}

func TestCurrent(t *testing.T) {
	tokens := new(MockTokenStore)
	profiles := new(MockProfileFetcher)
	tokens.On("Token", mock.Anything, clientID).Return("", nil)

	store := New(tokens, profiles)

	// Before the initial check the state is unknown, not logged out.
	state := store.Current(clientID)
	assert.True(t, state.Loading)
	assert.False(t, state.LoggedIn())

	store.Resolve(context.Background(), clientID)

	state = store.Current(clientID)
	assert.False(t, state.Loading)
}

func TestLoginAndLogout(t *testing.T) {
	tokens := new(MockTokenStore)
	profiles := new(MockProfileFetcher)
	sess := &model.Session{ID: "u1", Name: "Farmer", Email: "farmer@example.com", Token: "tok"}
	tokens.On("SaveToken", mock.Anything, clientID, "tok").Return(nil)
	tokens.On("ClearToken", mock.Anything, clientID).Return(nil)

	store := New(tokens, profiles)

	err := store.Login(context.Background(), clientID, sess)
	assert.NoError(t, err)
	state := store.Current(clientID)
	assert.True(t, state.LoggedIn())
	assert.Equal(t, "Farmer", state.User.Name)
	// Login bypasses the profile fetch; the payload is trusted.
	profiles.AssertNotCalled(t, "Profile")

	err = store.Logout(context.Background(), clientID)
	assert.NoError(t, err)
	state = store.Current(clientID)
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)

	// Logging out twice is a no-op.
	err = store.Logout(context.Background(), clientID)
	assert.NoError(t, err)
	assert.False(t, store.Current(clientID).LoggedIn())
}
