// Package auth implements the single-operator admin login and its
// cookie-session store. Sessions live in the database behind the
// SessionStore interface; expiry is enforced lazily on lookup and by a
// janitor loop started from main.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"fluidbook/pkg/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long an admin session stays valid
const SessionTTL = 24 * time.Hour

var (
	// ErrInvalidPassword is returned on a failed login attempt
	ErrInvalidPassword = errors.New("invalid password")
	// ErrSessionNotFound is returned when a session id is unknown or expired
	ErrSessionNotFound = errors.New("session not found")
)

// LoginRequest represents an admin login attempt
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// SessionStore persists admin sessions
type SessionStore interface {
	Put(session *models.AdminSession) error
	Lookup(id string) (*models.AdminSession, error)
	Expire(id string) error
	DeleteExpired(now time.Time) (int64, error)
}

// Service handles admin authentication
type Service struct {
	store        SessionStore
	passwordHash string
	password     string
}

// NewService creates a new auth service. The admin credential comes from
// ADMIN_PASSWORD_HASH (bcrypt) with a plain ADMIN_PASSWORD fallback for
// initial setup.
func NewService(store SessionStore) *Service {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	return &Service{
		store:        store,
		passwordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		password:     password,
	}
}

// Login verifies the admin password and creates a session
func (s *Service) Login(password string) (*models.AdminSession, error) {
	valid := false
	if s.passwordHash != "" {
		valid = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	} else {
		valid = password == s.password
	}
	if !valid {
		return nil, ErrInvalidPassword
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	session := &models.AdminSession{
		ID:        id,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.store.Put(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate checks a session id. Expired sessions are removed on read.
func (s *Service) Validate(id string) (*models.AdminSession, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.store.Lookup(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		s.store.Expire(id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Logout removes a session
func (s *Service) Logout(id string) {
	if id != "" {
		s.store.Expire(id)
	}
}

// StartJanitor removes expired sessions hourly until ctx is cancelled
func (s *Service) StartJanitor(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.DeleteExpired(time.Now())
			if err != nil {
				log.Error().Err(err).Msg("Session janitor sweep failed")
				continue
			}
			if removed > 0 {
				log.Info().Int64("removed", removed).Msg("Expired admin sessions removed")
			}
		}
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
