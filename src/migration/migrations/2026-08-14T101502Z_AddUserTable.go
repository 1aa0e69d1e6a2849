package migrations

import (
	"context"
	"time"

	"github.com/corkboard/corkboard/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddUserTable{})
}

type AddUserTable struct{}

func (m AddUserTable) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 14, 10, 15, 2, 0, time.UTC))
}

func (m AddUserTable) Name() string {
	return "AddUserTable"
}

func (m AddUserTable) Description() string {
	return "Adds the user account table"
}

func (m AddUserTable) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX users_username_lower ON users (LOWER(username));
	`)
	return err
}

func (m AddUserTable) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE users;
	`)
	return err
}
