package db

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

/*
A general error to be used when no results are found. This is the error
returned by QueryOne and QueryOneScalar, and can generally be used by other
database helpers that fetch a single result but find nothing.
*/
var NotFound = errors.New("not found")

/*
Performs a SQL query and returns a slice of all the result rows, mapped onto
the struct type T via its `db` tags. The special $columns placeholder
expands to the tagged columns of T, so queries do not need to repeat the
column list by hand. See the package documentation for details.
*/
func Query[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]*T, error) {
	rows, err := conn.Query(ctx, compileQuery[T](query), args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

/*
Identical to Query, but returns only the first result row. If there are no
rows in the result set, returns NotFound.
*/
func QueryOne[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (*T, error) {
	rows, err := conn.Query(ctx, compileQuery[T](query), args...)
	if err != nil {
		return nil, err
	}

	result, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound
		}
		return nil, err
	}

	return result, nil
}

/*
Performs a SQL query that selects a single column, returning the resulting
values directly. More convenient than Query for primitive types.
*/
func QueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[T])
}

/*
Identical to QueryScalar, but returns only the first result value. If there
are no rows in the result set, returns NotFound.
*/
func QueryOneScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	result, err := pgx.CollectOneRow(rows, pgx.RowTo[T])
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, NotFound
		}
		return zero, err
	}

	return result, nil
}

var reColumnsPlaceholder = regexp.MustCompile(`\$columns({(.*?)})?`)

func compileQuery[T any](query string) string {
	match := reColumnsPlaceholder.FindStringSubmatch(query)
	if match == nil {
		return query
	}

	var dest T
	destType := reflect.TypeOf(dest)
	columns := columnsForType(destType, match[2])

	return reColumnsPlaceholder.ReplaceAllString(query, strings.Join(columns, ", "))
}

func columnsForType(destType reflect.Type, prefix string) []string {
	if destType.Kind() == reflect.Ptr {
		destType = destType.Elem()
	}
	if destType.Kind() != reflect.Struct {
		panic("$columns can only be used when querying into a struct")
	}

	var columns []string
	for _, field := range reflect.VisibleFields(destType) {
		col := field.Tag.Get("db")
		if col == "" || col == "-" {
			continue
		}
		if prefix != "" {
			col = prefix + "." + col
		}
		columns = append(columns, col)
	}

	if len(columns) == 0 {
		panic("$columns used with a struct that has no `db` tags")
	}

	return columns
}
