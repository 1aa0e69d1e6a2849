/*
This package contains lowish-level APIs for making queries to our Postgres
database. It streamlines the process of mapping query results to Go types,
while allowing you to write arbitrary SQL queries.

Query syntax

Arguments are provided using placeholders like $1, $2, etc. All arguments
will be safely escaped and mapped from their Go type to the correct Postgres
type. (This is a direct proxy to pgx.)

When querying individual fields, select the field and use QueryScalar:

	ids, err := db.QueryScalar[int](ctx, conn, `SELECT id FROM users`)

To query multiple columns at once, use a struct type with `db:"column_name"`
tags and the special $columns placeholder:

	type Note struct {
		ID      string `db:"note_id"`
		Title   string `db:"title"`
		Content string `db:"content"`
	}
	notes, err := db.Query[Note](ctx, conn, `SELECT $columns FROM notes`)
	// Resulting query:
	// SELECT note_id, title, content FROM notes

When a table name prefix is required on each column, for example to
disambiguate in a JOIN, include the prefix in the placeholder like
$columns{prefix}:

	notes, err := db.Query[Note](ctx, conn, `
		SELECT $columns{notes}
		FROM
			notes
			JOIN users ON users.id = notes.user_id
	`)
	// Resulting query:
	// SELECT notes.note_id, notes.title, notes.content FROM ...
*/
package db
