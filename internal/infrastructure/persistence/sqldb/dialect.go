package sqldb

import (
	"context"
	"database/sql"
)

// Dialect holds the SQL that differs between the supported databases.
type Dialect interface {
	Name() string
	Migrate(ctx context.Context, db *sql.DB) error
	Placeholder(n int) string
	// PageClause is appended to an ordered SELECT.
	PageClause(limit, offset int) string
	// UpsertQuery inserts or replaces a row keyed by columns[0]. It takes one
	// argument per column, in column order.
	UpsertQuery(table string, columns []string) string
}
