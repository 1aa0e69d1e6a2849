package data

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()

	newStores := func(t *testing.T) (*MemorySessionStore, int) {
		users := NewMemoryCredentialStore()
		sessions := NewMemorySessionStore(users)
		user, err := users.Create(ctx, "alice", "irrelevant")
		require.Nil(t, err)
		return sessions, user.ID
	}

	t.Run("create then validate", func(t *testing.T) {
		sessions, userID := newStores(t)

		session, err := sessions.Create(ctx, userID)
		require.Nil(t, err)
		assert.Len(t, session.ID, 40)
		assert.Equal(t, session.CreatedAt.Add(auth.SessionDuration), session.ExpiresAt)

		identity, err := sessions.Validate(ctx, session.ID)
		require.Nil(t, err)
		assert.Equal(t, userID, identity.ID)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("unknown session id", func(t *testing.T) {
		sessions, _ := newStores(t)
		_, err := sessions.Validate(ctx, "nope")
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("expired session reads as absent", func(t *testing.T) {
		sessions, userID := newStores(t)

		session, err := sessions.Create(ctx, userID)
		require.Nil(t, err)

		// Just before expiry the session is alive.
		sessions.Now = func() time.Time {
			return session.ExpiresAt.Add(-time.Second)
		}
		_, err = sessions.Validate(ctx, session.ID)
		assert.Nil(t, err)

		// At expiry it is gone, even though no purge has run.
		sessions.Now = func() time.Time {
			return session.ExpiresAt
		}
		_, err = sessions.Validate(ctx, session.ID)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("expiry is fixed at creation", func(t *testing.T) {
		sessions, userID := newStores(t)

		session, err := sessions.Create(ctx, userID)
		require.Nil(t, err)

		// Activity near the end of the session's life must not extend it.
		sessions.Now = func() time.Time {
			return session.ExpiresAt.Add(-time.Second)
		}
		for i := 0; i < 3; i++ {
			_, err = sessions.Validate(ctx, session.ID)
			require.Nil(t, err)
		}

		sessions.Now = func() time.Time {
			return session.ExpiresAt.Add(time.Second)
		}
		_, err = sessions.Validate(ctx, session.ID)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		sessions, userID := newStores(t)

		session, err := sessions.Create(ctx, userID)
		require.Nil(t, err)

		deleted, err := sessions.Revoke(ctx, session.ID)
		require.Nil(t, err)
		assert.True(t, deleted)

		deleted, err = sessions.Revoke(ctx, session.ID)
		require.Nil(t, err)
		assert.False(t, deleted)

		_, err = sessions.Validate(ctx, session.ID)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("session for a deleted user reads as absent", func(t *testing.T) {
		sessions, _ := newStores(t)

		session, err := sessions.Create(ctx, 9999)
		require.Nil(t, err)

		_, err = sessions.Validate(ctx, session.ID)
		assert.ErrorIs(t, err, auth.ErrNoSession)
	})
}

func TestMemoryNoteStore(t *testing.T) {
	ctx := context.Background()
	const alice, bob = 1, 2

	t.Run("list is newest first", func(t *testing.T) {
		notes := NewMemoryNoteStore()
		first, err := notes.Create(ctx, alice, "first", "one")
		require.Nil(t, err)
		second, err := notes.Create(ctx, alice, "second", "two")
		require.Nil(t, err)

		list, err := notes.ListForUser(ctx, alice)
		require.Nil(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("list never returns foreign notes", func(t *testing.T) {
		notes := NewMemoryNoteStore()
		_, err := notes.Create(ctx, alice, "mine", "private")
		require.Nil(t, err)

		list, err := notes.ListForUser(ctx, bob)
		require.Nil(t, err)
		assert.Empty(t, list)
	})

	t.Run("foreign note reads as not found", func(t *testing.T) {
		notes := NewMemoryNoteStore()
		note, err := notes.Create(ctx, alice, "mine", "private")
		require.Nil(t, err)

		_, err = notes.Fetch(ctx, bob, note.ID)
		assert.ErrorIs(t, err, db.NotFound)
		_, err = notes.Update(ctx, bob, note.ID, "stolen", "stolen")
		assert.ErrorIs(t, err, db.NotFound)
		err = notes.Delete(ctx, bob, note.ID)
		assert.ErrorIs(t, err, db.NotFound)

		// And the note is untouched for its owner.
		mine, err := notes.Fetch(ctx, alice, note.ID)
		require.Nil(t, err)
		assert.Equal(t, "mine", mine.Title)
	})

	t.Run("update and delete", func(t *testing.T) {
		notes := NewMemoryNoteStore()
		note, err := notes.Create(ctx, alice, "draft", "wip")
		require.Nil(t, err)

		updated, err := notes.Update(ctx, alice, note.ID, "final", "done")
		require.Nil(t, err)
		assert.Equal(t, "final", updated.Title)
		assert.Equal(t, note.ID, updated.ID)

		err = notes.Delete(ctx, alice, note.ID)
		require.Nil(t, err)
		err = notes.Delete(ctx, alice, note.ID)
		assert.ErrorIs(t, err, db.NotFound)
	})

	t.Run("notes expire 30 days out", func(t *testing.T) {
		notes := NewMemoryNoteStore()
		note, err := notes.Create(ctx, alice, "temp", "gone soon")
		require.Nil(t, err)
		assert.Equal(t, note.CreatedAt.Add(30*24*time.Hour), note.ExpiresAt)
	})
}

func TestMemoryPinStore(t *testing.T) {
	ctx := context.Background()
	const alice, bob = 1, 2

	t.Run("empty board reads as not found", func(t *testing.T) {
		pins := NewMemoryPinStore()
		_, err := pins.Fetch(ctx, alice)
		assert.ErrorIs(t, err, db.NotFound)
	})

	t.Run("save then fetch", func(t *testing.T) {
		pins := NewMemoryPinStore()
		payload := json.RawMessage(`[{"x":1,"y":2}]`)

		board, err := pins.Save(ctx, alice, payload)
		require.Nil(t, err)
		assert.Equal(t, alice, board.UserID)

		got, err := pins.Fetch(ctx, alice)
		require.Nil(t, err)
		assert.JSONEq(t, string(payload), string(got))
	})

	t.Run("save replaces the whole board", func(t *testing.T) {
		pins := NewMemoryPinStore()
		_, err := pins.Save(ctx, alice, json.RawMessage(`[{"x":1}]`))
		require.Nil(t, err)
		_, err = pins.Save(ctx, alice, json.RawMessage(`[]`))
		require.Nil(t, err)

		got, err := pins.Fetch(ctx, alice)
		require.Nil(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("concurrent saves converge to one of the payloads", func(t *testing.T) {
		pins := NewMemoryPinStore()
		payloads := []string{
			`[{"x":1}]`,
			`[{"x":2}]`,
			`[{"x":3}]`,
			`[{"x":4}]`,
		}

		var wg sync.WaitGroup
		for _, payload := range payloads {
			payload := payload
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := pins.Save(ctx, alice, json.RawMessage(payload))
				assert.Nil(t, err)
			}()
		}
		wg.Wait()

		got, err := pins.Fetch(ctx, alice)
		require.Nil(t, err)
		assert.Contains(t, payloads, string(got))
	})

	t.Run("boards are per user", func(t *testing.T) {
		pins := NewMemoryPinStore()
		_, err := pins.Save(ctx, alice, json.RawMessage(`[{"x":1}]`))
		require.Nil(t, err)

		_, err = pins.Fetch(ctx, bob)
		assert.ErrorIs(t, err, db.NotFound)
	})
}
