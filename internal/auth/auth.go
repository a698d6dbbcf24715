// Package auth implements credential checks and the on-disk login session.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shabari-K-S/Medicare/internal/hospital"
)

// Default administrator credentials, created on first run.
const (
	AdminEmail    = "admin@hospital.com"
	adminPassword = "admin123"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match an active user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("email already registered")

// Service authenticates users against the hospital store.
type Service struct {
	store *hospital.Store
}

// NewService instantiates and returns an auth service.
func NewService(store *hospital.Store) *Service {
	return &Service{store: store}
}

// HashPassword returns the hex-encoded SHA-256 digest of a password.
func HashPassword(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

// Authenticate verifies an email/password pair against active users.
func (s *Service) Authenticate(email, password string) (*hospital.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if user == nil || user.Status != hospital.StatusActive {
		return nil, ErrInvalidCredentials
	}
	if user.Password != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user with a hashed password.
func (s *Service) Register(user *hospital.User, password string) error {
	existing, err := s.store.GetUserByEmail(user.Email)
	if err != nil {
		return errors.Wrap(err, "checking for existing user")
	}
	if existing != nil {
		return ErrEmailTaken
	}
	user.Password = HashPassword(password)
	_, err = s.store.AddUser(user)
	return errors.Wrap(err, "adding user")
}

// EnsureAdmin creates the default administrator account if it is missing.
func (s *Service) EnsureAdmin() error {
	existing, err := s.store.GetUserByEmail(AdminEmail)
	if err != nil {
		return errors.Wrap(err, "checking for admin user")
	}
	if existing != nil {
		return nil
	}
	_, err = s.store.AddUser(&hospital.User{
		Name:     "Admin",
		Email:    AdminEmail,
		Password: HashPassword(adminPassword),
		Role:     "admin",
	})
	if err != nil {
		return errors.Wrap(err, "creating admin user")
	}
	log.Info().Str("email", AdminEmail).Msg("created default admin account")
	return nil
}
