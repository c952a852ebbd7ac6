// Package models defines the persisted document shapes: the shared auth
// store (users, sessions) and the per-tag business data store. JSON field
// names are part of the on-disk contract and must stay stable.
package models

import "time"

// User is an account in the shared auth store. The ID is assigned by the
// server at creation time and never changes. Email uniqueness and lookup are
// case-sensitive.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy safe to hand to the API layer, with the password
// hash blanked.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Session backs one outstanding refresh token for one user. Multiple
// concurrent sessions per user are allowed (multi-device). ExpiresAt is
// derived from CreatedAt plus the configured refresh-token lifetime.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	RefreshToken string    `json:"refreshToken"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its lifetime at the given
// instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
