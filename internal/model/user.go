package model

import "time"

// User represents an authenticated user as reported by the backend profile
// endpoint. Profile fields are always refetched from the backend; only the
// token is persisted client-side.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Session is the payload returned by the backend on a successful
// register/login/google-auth call. A valid session always carries a
// non-empty token.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Token  string `json:"token"`
}

// UserOf extracts the profile portion of a session payload.
func (s *Session) UserOf() *User {
	return &User{
		ID:     s.ID,
		Name:   s.Name,
		Email:  s.Email,
		Avatar: s.Avatar,
	}
}
