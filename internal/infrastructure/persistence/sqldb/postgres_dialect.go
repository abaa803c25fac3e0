package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmanzanog/finrecords/internal/infrastructure/persistence/sqldb/migrations"
	"github.com/pressly/goose/v3"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.PostgresFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *PostgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (d *PostgresDialect) PageClause(limit, offset int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

func (d *PostgresDialect) UpsertQuery(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.Placeholder(i + 1)
	}

	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		columns[0],
		strings.Join(updates, ", "),
	)
}
