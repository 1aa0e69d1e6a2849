package auth

import (
	"context"
	"errors"

	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/logging"
	"github.com/corkboard/corkboard/src/models"
	"github.com/corkboard/corkboard/src/oops"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUsernameTaken      = errors.New("username already taken")
)

type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, username string, passwordHash string) (*models.User, error)
}

// Service orchestrates login, logout, and registration on top of the
// credential and session stores. It holds no state of its own; all durable
// state lives in the stores.
type Service struct {
	Users    CredentialStore
	Sessions SessionStore
}

func NewService(users CredentialStore, sessions SessionStore) *Service {
	return &Service{
		Users:    users,
		Sessions: sessions,
	}
}

// Checks the given credentials and creates a session on success. The
// ErrUserNotFound and ErrInvalidPassword outcomes are distinct here so they
// can be logged distinctly, but the HTTP layer presents both as a single
// generic failure to avoid username enumeration.
func (s *Service) Login(ctx context.Context, username string, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			logging.FromContext(ctx).Debug().Str("username", username).Msg("login failed: no such user")
			return nil, ErrUserNotFound
		}
		return nil, oops.New(err, "failed to look up user by username")
	}

	hashed, err := ParsePasswordString(user.Password)
	if err != nil {
		// A malformed stored hash must read as a denied login, never a crash.
		logging.FromContext(ctx).Error().Err(err).Int("userId", user.ID).Msg("user has a malformed password hash")
		return nil, ErrInvalidPassword
	}

	ok, err := CheckPassword(password, hashed)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Int("userId", user.ID).Msg("failed to check password against hash")
		return nil, ErrInvalidPassword
	}
	if !ok {
		logging.FromContext(ctx).Debug().Str("username", username).Msg("login failed: wrong password")
		return nil, ErrInvalidPassword
	}

	session, err := s.Sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, oops.New(err, "failed to create session")
	}

	return session, nil
}

// Revokes the session. Always succeeds from the caller's perspective, even
// if the session was already gone; the caller must still clear the cookie.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	_, err := s.Sessions.Revoke(ctx, sessionID)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to revoke session on logout")
	}
}

// Creates a new user. Does not log the new user in.
func (s *Service) Register(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.Users.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, db.NotFound) {
		return nil, oops.New(err, "failed to check for existing username")
	}

	hashed := HashPassword(password)

	user, err := s.Users.Create(ctx, username, hashed.String())
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			// Two registrations raced; the unique constraint broke the tie.
			return nil, ErrUsernameTaken
		}
		return nil, oops.New(err, "failed to store user")
	}

	return user, nil
}
