package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmanzanog/finrecords/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	content, err := migrations.OracleFS.ReadFile("oracle/20240101000000_init.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	// Statements are separated by '/' lines as in SQL*Plus scripts.
	statements := strings.Split(string(content), "\n/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) Placeholder(n int) string { return fmt.Sprintf(":%d", n) }

func (d *OracleDialect) PageClause(limit, offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

// UpsertQuery builds a MERGE that binds every column once in a dual row.
func (d *OracleDialect) UpsertQuery(table string, columns []string) string {
	selects := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, c := range columns {
		selects[i] = fmt.Sprintf("%s AS %s", d.Placeholder(i+1), c)
		values[i] = "s." + c
	}

	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("t.%s = s.%s", c, c))
	}

	return fmt.Sprintf(
		"MERGE INTO %s t USING (SELECT %s FROM dual) s ON (t.%s = s.%s) "+
			"WHEN MATCHED THEN UPDATE SET %s "+
			"WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s)",
		table,
		strings.Join(selects, ", "),
		columns[0], columns[0],
		strings.Join(updates, ", "),
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
	)
}
