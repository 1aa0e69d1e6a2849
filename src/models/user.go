package models

import "time"

type User struct {
	ID int `db:"id"`

	Username string `db:"username"`
	Password string `db:"password"`

	CreatedAt time.Time `db:"created_at"`
}

// The public attributes of a user, resolved from a valid session and
// attached to a request. Never persisted.
type Identity struct {
	ID        int
	Username  string
	CreatedAt time.Time
}

func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
