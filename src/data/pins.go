package data

import (
	"context"
	"encoding/json"

	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/models"
	"github.com/corkboard/corkboard/src/oops"
)

var _ Pins = &PinStore{}

type PinStore struct {
	Conn db.ConnOrTx
}

func NewPinStore(conn db.ConnOrTx) *PinStore {
	return &PinStore{Conn: conn}
}

func (s *PinStore) Fetch(ctx context.Context, userID int) (json.RawMessage, error) {
	return db.QueryOneScalar[json.RawMessage](ctx, s.Conn,
		`SELECT pins_data FROM pins WHERE user_id = $1`,
		userID,
	)
}

// Saves the user's entire pin board. The upsert keys on user_id, so two
// concurrent saves from the same user converge to a single row with one of
// the two payloads rather than duplicating.
func (s *PinStore) Save(ctx context.Context, userID int, pins json.RawMessage) (*models.PinBoard, error) {
	board, err := db.QueryOne[models.PinBoard](ctx, s.Conn,
		`
		INSERT INTO pins (user_id, pins_data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET pins_data = EXCLUDED.pins_data, updated_at = CURRENT_TIMESTAMP
		RETURNING $columns
		`,
		userID, pins,
	)
	if err != nil {
		return nil, oops.New(err, "failed to save pins")
	}

	return board, nil
}
