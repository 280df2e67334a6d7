// Package auth implements the demo login gate. Credentials are a fixed
// in-memory list and sessions live in a small bbolt file; this is a
// demonstration mechanism, not a security boundary.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no valid session")
)

// loginDelay simulates upstream latency on login attempts
const loginDelay = 800 * time.Millisecond

// User is the authenticated identity persisted inside a session
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is one logged-in session
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type credential struct {
	user         User
	passwordHash []byte
}

// demoUsers is the fixed demo credential list
var demoUsers = []struct {
	user     User
	password string
}{
	{User{ID: "1", Username: "admin", Email: "admin@soa.com", Role: "Administrator"}, "admin123"},
	{User{ID: "2", Username: "analyst", Email: "analyst@soa.com", Role: "Data Analyst"}, "analyst123"},
	{User{ID: "3", Username: "viewer", Email: "viewer@soa.com", Role: "Viewer"}, "viewer123"},
}

// Service performs logins against the demo credential list and manages
// persisted sessions
type Service struct {
	store  *SessionStore
	ttl    time.Duration
	logger *slog.Logger
	delay  time.Duration
	now    func() time.Time
	creds  []credential
}

// NewService creates the auth service. Demo passwords are hashed at
// construction so login compares hashes like a real credential check
// would.
func NewService(store *SessionStore, ttl time.Duration, logger *slog.Logger) (*Service, error) {
	s := &Service{
		store:  store,
		ttl:    ttl,
		logger: logger,
		delay:  loginDelay,
		now:    time.Now,
	}

	for _, du := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.creds = append(s.creds, credential{user: du.user, passwordHash: hash})
	}

	return s, nil
}

// Login checks the credentials after a simulated latency. On success a
// session is created and persisted; on mismatch nothing is persisted.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	for _, c := range s.creds {
		if c.user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) != nil {
			break
		}

		session := &Session{
			ID:        uuid.New().String(),
			User:      c.user,
			ExpiresAt: s.now().Add(s.ttl),
		}
		if err := s.store.Put(session); err != nil {
			s.logger.Error("failed to persist session", "username", username, "error", err)
			return nil, err
		}
		s.logger.Info("login succeeded", "username", username, "role", c.user.Role)
		return session, nil
	}

	s.logger.Warn("login failed", "username", username)
	return nil, ErrInvalidCredentials
}

// Session restores a persisted session by ID. Expired or malformed
// sessions are discarded and reported as ErrNoSession.
func (s *Service) Session(id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}

	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}
	if s.now().After(session.ExpiresAt) {
		if err := s.store.Delete(id); err != nil {
			s.logger.Error("failed to delete expired session", "error", err)
		}
		return nil, ErrNoSession
	}
	return session, nil
}

// Logout removes the session from memory of the store
func (s *Service) Logout(id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(id)
}
