package domain

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrForbidden         = errors.New("access forbidden")
	ErrSessionUnresolved = errors.New("session not resolved yet")
)

// SessionState is the resolution of the current identity.
type SessionState string

const (
	SessionUnresolved    SessionState = "unresolved"
	SessionAuthenticated SessionState = "authenticated"
	SessionAnonymous     SessionState = "anonymous"
)

// Session is a point-in-time view of the authentication state. User is set
// only while State is SessionAuthenticated. LastError keeps the most recent
// remote failure for diagnostics; it never drives a transition.
type Session struct {
	State     SessionState `json:"state"`
	User      *User        `json:"user,omitempty"`
	LastError string       `json:"last_error,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}

func (s Session) Resolved() bool {
	return s.State != SessionUnresolved
}
