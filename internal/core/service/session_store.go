package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/api/metrics"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

const (
	loginFailed  = "Login failed"
	signupFailed = "Signup failed"
)

// SessionStore tracks who the shopper is. It starts unresolved and leaves
// that state on the first CheckSession, Login, Signup or Logout. Backend
// calls run without holding the lock, so readers see the previous session
// until a call completes.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
	client  ports.IdentityClient
	roles   domain.RolePolicy
	log     zerolog.Logger
}

func NewSessionStore(client ports.IdentityClient, roles domain.RolePolicy, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		session: domain.Session{State: domain.SessionUnresolved},
		client:  client,
		roles:   roles,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// CheckSession asks the backend who is signed in. A transport failure
// resolves to anonymous with the reason kept in LastError.
func (s *SessionStore) CheckSession(ctx context.Context) domain.Session {
	resp, err := s.client.Me(ctx)
	switch {
	case err != nil:
		s.remoteFailure("me", err)
		s.setAnonymous(err.Error())
	case resp.OK && resp.User != nil:
		s.setAuthenticated(*resp.User)
	default:
		s.setAnonymous("")
	}
	return s.Snapshot()
}

// Login signs in with the given credentials. Failures are reported through
// the result and leave the session state as it was.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	resp, err := s.client.Login(ctx, creds)
	return s.authenticate("login", loginFailed, resp, err)
}

// Signup registers and signs in. Same outcome rules as Login.
func (s *SessionStore) Signup(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	resp, err := s.client.Signup(ctx, creds)
	return s.authenticate("signup", signupFailed, resp, err)
}

// Logout tells the backend to end the session and becomes anonymous whether
// or not the backend could be reached.
func (s *SessionStore) Logout(ctx context.Context) domain.Session {
	reason := ""
	if err := s.client.Logout(ctx); err != nil {
		s.remoteFailure("logout", err)
		reason = err.Error()
	}
	s.setAnonymous(reason)
	return s.Snapshot()
}

// UpdateUser merges patch into the signed-in user.
func (s *SessionStore) UpdateUser(patch domain.UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Authenticated() {
		return domain.User{}, fmt.Errorf("update user: %w", domain.ErrNotAuthenticated)
	}
	u := patch.Apply(*s.session.User)
	s.session.User = &u
	return u, nil
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *SessionStore) authenticate(op, fallback string, resp ports.IdentityResponse, err error) domain.AuthResult {
	if err != nil {
		s.remoteFailure(op, err)
		s.recordError(err.Error())
		return domain.AuthResult{Message: fallback}
	}
	if !resp.OK || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		s.log.Info().Str("op", op).Str("message", msg).Msg("authentication rejected")
		return domain.AuthResult{Message: msg}
	}
	u := s.setAuthenticated(*resp.User)
	return domain.AuthResult{OK: true, Message: resp.Message, User: &u}
}

func (s *SessionStore) setAuthenticated(u domain.User) domain.User {
	u = s.roles.Apply(u)

	s.mu.Lock()
	s.session = domain.Session{State: domain.SessionAuthenticated, User: &u}
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.SessionAuthenticated)).Inc()
	s.log.Debug().Str("username", u.Username).Str("role", u.Role).Msg("session authenticated")
	return u
}

func (s *SessionStore) setAnonymous(reason string) {
	s.mu.Lock()
	s.session = domain.Session{State: domain.SessionAnonymous, LastError: reason}
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.SessionAnonymous)).Inc()
	s.log.Debug().Msg("session anonymous")
}

func (s *SessionStore) recordError(reason string) {
	s.mu.Lock()
	s.session.LastError = reason
	s.mu.Unlock()
}

func (s *SessionStore) remoteFailure(op string, err error) {
	metrics.RemoteFailuresTotal.WithLabelValues(op).Inc()
	s.log.Warn().Err(err).Str("op", op).Msg("backend call failed")
}
