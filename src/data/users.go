package data

import (
	"context"
	"errors"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/models"
	"github.com/corkboard/corkboard/src/oops"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ auth.CredentialStore = &UserStore{}

type UserStore struct {
	Conn db.ConnOrTx
}

func NewUserStore(conn db.ConnOrTx) *UserStore {
	return &UserStore{Conn: conn}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.QueryOne[models.User](ctx, s.Conn,
		`SELECT $columns FROM users WHERE LOWER(username) = LOWER($1)`,
		username,
	)
}

func (s *UserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	return db.QueryOne[models.User](ctx, s.Conn,
		`SELECT $columns FROM users WHERE id = $1`,
		id,
	)
}

func (s *UserStore) Create(ctx context.Context, username string, passwordHash string) (*models.User, error) {
	user, err := db.QueryOne[models.User](ctx, s.Conn,
		`
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING $columns
		`,
		username, passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique_violation on the username; a concurrent registration won
			return nil, auth.ErrUsernameTaken
		}
		return nil, oops.New(err, "failed to insert user")
	}

	return user, nil
}
