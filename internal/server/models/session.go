package models

import "time"

// Session is a login session keyed by an opaque token. Name and Role are
// denormalized copies of the owning User, refreshed by profile fan-out.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) Identity() SessionIdentity {
	return SessionIdentity{UserID: s.UserID, Email: s.Email, Name: s.Name, Role: s.Role}
}

// SessionIdentity is the caller identity resolved from a session. It is
// passed explicitly to every operation that needs to know who is asking.
type SessionIdentity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

func (i SessionIdentity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
