package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*auth.Service, *data.MemorySessionStore) {
	users := data.NewMemoryCredentialStore()
	sessions := data.NewMemorySessionStore(users)
	return auth.NewService(users, sessions), sessions
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates a session", func(t *testing.T) {
		s, sessions := newTestService()
		_, err := s.Register(ctx, "alice", "password123")
		require.Nil(t, err)

		session, err := s.Login(ctx, "alice", "password123")
		require.Nil(t, err)
		assert.Len(t, session.ID, 40)
		assert.WithinDuration(t, session.CreatedAt.Add(auth.SessionDuration), session.ExpiresAt, time.Second)

		identity, err := sessions.Validate(ctx, session.ID)
		require.Nil(t, err)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("username lookup is case-insensitive", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, "Alice", "password123")
		require.Nil(t, err)

		_, err = s.Login(ctx, "alice", "password123")
		assert.Nil(t, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Login(ctx, "", "password123")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
		_, err = s.Login(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("wrong password creates no session", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, "alice", "password123")
		require.Nil(t, err)

		session, err := s.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidPassword)
		assert.Nil(t, session)
	})

	t.Run("malformed stored hash denies login", func(t *testing.T) {
		users := data.NewMemoryCredentialStore()
		sessions := data.NewMemorySessionStore(users)
		s := auth.NewService(users, sessions)

		_, err := users.Create(ctx, "corrupted", "not-a-real-hash")
		require.Nil(t, err)

		_, err = s.Login(ctx, "corrupted", "anything")
		assert.ErrorIs(t, err, auth.ErrInvalidPassword)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s, sessions := newTestService()

	_, err := s.Register(ctx, "alice", "password123")
	require.Nil(t, err)
	session, err := s.Login(ctx, "alice", "password123")
	require.Nil(t, err)

	s.Logout(ctx, session.ID)
	_, err = sessions.Validate(ctx, session.ID)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	// Logging out twice, or with no session at all, is fine.
	s.Logout(ctx, session.ID)
	s.Logout(ctx, "")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash, not the password", func(t *testing.T) {
		users := data.NewMemoryCredentialStore()
		s := auth.NewService(users, data.NewMemorySessionStore(users))

		user, err := s.Register(ctx, "alice", "password123")
		require.Nil(t, err)
		assert.NotContains(t, user.Password, "password123")

		hashed, err := auth.ParsePasswordString(user.Password)
		require.Nil(t, err)
		ok, err := auth.CheckPassword("password123", hashed)
		require.Nil(t, err)
		assert.True(t, ok)
	})

	t.Run("does not log the user in", func(t *testing.T) {
		s, _ := newTestService()
		user, err := s.Register(ctx, "alice", "password123")
		require.Nil(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing credentials", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("duplicate username keeps the original account", func(t *testing.T) {
		users := data.NewMemoryCredentialStore()
		s := auth.NewService(users, data.NewMemorySessionStore(users))

		first, err := s.Register(ctx, "alice", "password123")
		require.Nil(t, err)

		_, err = s.Register(ctx, "ALICE", "hijack")
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)

		// The original credentials still work.
		unchanged, err := users.FindByID(ctx, first.ID)
		require.Nil(t, err)
		assert.Equal(t, first.Password, unchanged.Password)
	})
}
