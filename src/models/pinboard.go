package models

import (
	"encoding/json"
	"time"
)

// The entire pin board for one user. Saves replace the payload wholesale,
// so there is at most one row per user.
type PinBoard struct {
	UserID    int             `db:"user_id"`
	Pins      json.RawMessage `db:"pins_data"`
	UpdatedAt time.Time       `db:"updated_at"`
}
