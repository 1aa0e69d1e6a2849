/*
Package data contains the stores backing the website: credentials,
sessions, notes, and pin boards. The Postgres implementations run on any
db.ConnOrTx; the in-memory implementations back tests and offline tooling.

Every note and pin query is scoped by the owning user's id in addition to
the row's own key, so a resource owned by another user is indistinguishable
from one that does not exist.
*/
package data

import (
	"context"
	"encoding/json"

	"github.com/corkboard/corkboard/src/models"
)

type Notes interface {
	ListForUser(ctx context.Context, userID int) ([]*models.Note, error)
	Fetch(ctx context.Context, userID int, noteID string) (*models.Note, error)
	Create(ctx context.Context, userID int, title string, content string) (*models.Note, error)
	Update(ctx context.Context, userID int, noteID string, title string, content string) (*models.Note, error)
	Delete(ctx context.Context, userID int, noteID string) error
}

type Pins interface {
	Fetch(ctx context.Context, userID int) (json.RawMessage, error)
	Save(ctx context.Context, userID int, pins json.RawMessage) (*models.PinBoard, error)
}
