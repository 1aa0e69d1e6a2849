package data

import (
	"context"

	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/models"
	"github.com/corkboard/corkboard/src/oops"
	"github.com/google/uuid"
)

var _ Notes = &NoteStore{}

type NoteStore struct {
	Conn db.ConnOrTx
}

func NewNoteStore(conn db.ConnOrTx) *NoteStore {
	return &NoteStore{Conn: conn}
}

func (s *NoteStore) ListForUser(ctx context.Context, userID int) ([]*models.Note, error) {
	notes, err := db.Query[models.Note](ctx, s.Conn,
		`
		SELECT $columns
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
		`,
		userID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch notes")
	}

	return notes, nil
}

func (s *NoteStore) Fetch(ctx context.Context, userID int, noteID string) (*models.Note, error) {
	return db.QueryOne[models.Note](ctx, s.Conn,
		`
		SELECT $columns
		FROM notes
		WHERE note_id = $1 AND user_id = $2
		`,
		noteID, userID,
	)
}

func (s *NoteStore) Create(ctx context.Context, userID int, title string, content string) (*models.Note, error) {
	note, err := db.QueryOne[models.Note](ctx, s.Conn,
		`
		INSERT INTO notes (note_id, user_id, title, content, expires_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP + INTERVAL '30 days')
		RETURNING $columns
		`,
		uuid.New().String(), userID, title, content,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert note")
	}

	return note, nil
}

func (s *NoteStore) Update(ctx context.Context, userID int, noteID string, title string, content string) (*models.Note, error) {
	return db.QueryOne[models.Note](ctx, s.Conn,
		`
		UPDATE notes
		SET title = $1, content = $2
		WHERE note_id = $3 AND user_id = $4
		RETURNING $columns
		`,
		title, content, noteID, userID,
	)
}

func (s *NoteStore) Delete(ctx context.Context, userID int, noteID string) error {
	tag, err := s.Conn.Exec(ctx,
		`DELETE FROM notes WHERE note_id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		return oops.New(err, "failed to delete note")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}

	return nil
}
