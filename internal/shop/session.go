package shop

import "time"

// DefaultSessionTTL is the fixed window after login before forced logout.
// There is no sliding expiration and no token refresh.
const DefaultSessionTTL = 24 * time.Hour

// Session is the authenticated-user record. At most one exists per client.
type Session struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LoginAt   time.Time `json:"loginTime"`
	SessionID string    `json:"session_id"`
}

// Expired reports whether the session age exceeds ttl at now.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoginAt) > ttl
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}
