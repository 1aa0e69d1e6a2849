package models

import "time"

type Note struct {
	ID     string `db:"note_id"`
	UserID int    `db:"user_id"`

	Title   string `db:"title"`
	Content string `db:"content"`

	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
