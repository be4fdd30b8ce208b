// Package models holds the client-side view of server data.
package models

import "time"

type Video struct {
	ID        int64
	Title     string
	Artist    string
	URL       string
	CreatedAt time.Time
}

// Profile is the logged-in user's account.
type Profile struct {
	UserID    int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Session is an authenticated server session as seen by the CLI.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
