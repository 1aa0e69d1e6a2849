package data

import (
	"context"
	"errors"
	"time"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/jobs"
	"github.com/corkboard/corkboard/src/models"
	"github.com/corkboard/corkboard/src/oops"
	"github.com/corkboard/corkboard/src/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ auth.SessionStore = &SessionStore{}

type SessionStore struct {
	Conn db.ConnOrTx
}

func NewSessionStore(conn db.ConnOrTx) *SessionStore {
	return &SessionStore{Conn: conn}
}

func (s *SessionStore) Create(ctx context.Context, userID int) (*models.Session, error) {
	now := time.Now()
	session := models.Session{
		ID:        auth.MakeSessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionDuration),
	}

	_, err := s.Conn.Exec(ctx,
		`
		INSERT INTO sessions (session_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		`,
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, oops.New(err, "failed to persist session")
	}

	return &session, nil
}

func (s *SessionStore) Validate(ctx context.Context, sessionID string) (*models.Identity, error) {
	// Expired rows must never validate even if the cleanup job has not
	// purged them yet, so the lookup checks expires_at itself.
	session, err := db.QueryOne[models.Session](ctx, s.Conn,
		`
		SELECT $columns
		FROM sessions
		WHERE session_id = $1 AND expires_at > CURRENT_TIMESTAMP
		`,
		sessionID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, auth.ErrNoSession
		}
		return nil, oops.New(err, "failed to look up session")
	}

	user, err := db.QueryOne[models.User](ctx, s.Conn,
		`SELECT $columns FROM users WHERE id = $1`,
		session.UserID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			// The FK cascade should make this impossible, but a session
			// without a user is no session at all.
			return nil, auth.ErrNoSession
		}
		return nil, oops.New(err, "failed to look up user for session")
	}

	return user.Identity(), nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) (bool, error) {
	tag, err := s.Conn.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return false, oops.New(err, "failed to delete session")
	}

	return tag.RowsAffected() > 0, nil
}

// Purges expired session rows. Validate already refuses them, so this is
// hygiene, not a correctness requirement.
func DeleteExpiredSessions(ctx context.Context, conn db.ConnOrTx) (int64, error) {
	tag, err := conn.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, oops.New(err, "failed to delete expired sessions")
	}

	return tag.RowsAffected(), nil
}

func PeriodicallyDeleteExpiredSessions(conn *pgxpool.Pool) *jobs.Job {
	job := jobs.New("periodically delete expired sessions")
	go func() {
		defer job.Finish()

		t := time.NewTicker(1 * time.Minute)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				err := func() (err error) {
					defer utils.RecoverPanicAsError(&err)

					n, err := DeleteExpiredSessions(job.Ctx, conn)
					if err == nil {
						if n > 0 {
							job.Logger.Info().Int64("num deleted sessions", n).Msg("Deleted expired sessions")
						}
					} else {
						job.Logger.Error().Err(err).Msg("Failed to delete expired sessions")
					}
					return nil
				}()
				if err != nil {
					job.Logger.Error().Err(err).Msg("Panicked while deleting expired sessions")
				}
			case <-job.Canceled():
				return
			}
		}
	}()
	return job
}
