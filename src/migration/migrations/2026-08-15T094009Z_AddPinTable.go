package migrations

import (
	"context"
	"time"

	"github.com/corkboard/corkboard/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddPinTable{})
}

type AddPinTable struct{}

func (m AddPinTable) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 15, 9, 40, 9, 0, time.UTC))
}

func (m AddPinTable) Name() string {
	return "AddPinTable"
}

func (m AddPinTable) Description() string {
	return "Adds the pin board table, one row per user"
}

func (m AddPinTable) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE pins (
			user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			pins_data JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id)
		);
	`)
	return err
}

func (m AddPinTable) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE pins;
	`)
	return err
}
