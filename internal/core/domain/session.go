package domain

import "time"

// Session is the server-side record behind a signed session cookie.
//
// States: absent -> active (login) -> absent (logout or TTL expiry).
// There is no renewal; ExpiresAt is fixed at login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its TTL at instant now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
