package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ClientTokenExpiry is the duration for which client identity tokens are
// valid. The identity outlives the backend session on purpose: preferences
// and toasts belong to the browser, not to the login.
const ClientTokenExpiry = 365 * 24 * time.Hour

// ClientClaims identifies a browser client across requests.
type ClientClaims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

// IdentityService signs and validates the client identity cookie.
type IdentityService struct {
	secret []byte
}

// NewIdentityService creates a new identity service with the given secret.
func NewIdentityService(secret string) *IdentityService {
	return &IdentityService{
		secret: []byte(secret),
	}
}

// NewClientID generates a fresh client identifier.
func NewClientID() string {
	return uuid.New().String()
}

// IssueClientToken signs a token carrying the client ID.
func (s *IdentityService) IssueClientToken(clientID string) (string, error) {
	claims := &ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ClientTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseClientID validates a client identity token and returns the client ID.
func (s *IdentityService) ParseClientID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*ClientClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ClientID == "" {
		return "", errors.New("client ID not found")
	}

	return claims.ClientID, nil
}
