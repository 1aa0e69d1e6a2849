package migrations

import (
	"context"
	"time"

	"github.com/corkboard/corkboard/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddNoteTable{})
}

type AddNoteTable struct{}

func (m AddNoteTable) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 15, 9, 12, 47, 0, time.UTC))
}

func (m AddNoteTable) Name() string {
	return "AddNoteTable"
}

func (m AddNoteTable) Description() string {
	return "Adds the per-user notes table"
}

func (m AddNoteTable) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE notes (
			note_id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
		CREATE INDEX notes_user_id ON notes (user_id);
	`)
	return err
}

func (m AddNoteTable) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE notes;
	`)
	return err
}
