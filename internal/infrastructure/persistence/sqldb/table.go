package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmanzanog/finrecords/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table maps one record kind onto one SQL table. columns[0] is the primary
// key and every table has a created_at column for ordering.
type table[T any] struct {
	db      *DB
	name    string
	columns []string
	values  func(*T) []any
	scan    func(rowScanner) (*T, error)
}

func (t *table[T]) selectList() string {
	return strings.Join(t.columns, ", ")
}

func (t *table[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := t.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.selectList(), t.name, t.columns[0]))

	record, err := t.scan(t.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("Record not found", "table", t.name, "id", id)
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.name, err)
	}
	return record, nil
}

func (t *table[T]) FindPage(ctx context.Context, pageIndex, pageSize int) (domain.Page[T], error) {
	page := domain.Page[T]{Items: []T{}}

	if err := t.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)).Scan(&page.TotalElements); err != nil {
		return page, fmt.Errorf("counting %s: %w", t.name, err)
	}
	if pageIndex < 0 || pageSize <= 0 || page.TotalElements == 0 ||
		int64(pageIndex) > (page.TotalElements-1)/int64(pageSize) {
		return page, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, %s %s",
		t.selectList(), t.name, t.columns[0], t.db.Dialect.PageClause(pageSize, pageIndex*pageSize))

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		slog.Error("Failed to list records", "table", t.name, "error", err)
		return page, fmt.Errorf("querying %s: %w", t.name, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}(rows)

	for rows.Next() {
		record, err := t.scan(rows)
		if err != nil {
			return page, fmt.Errorf("scanning row: %w", err)
		}
		page.Items = append(page.Items, *record)
	}
	if err := rows.Err(); err != nil {
		return page, err
	}
	return page, nil
}

func (t *table[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	query := t.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", t.name, t.columns[0]))

	var n int64
	if err := t.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, fmt.Errorf("querying %s: %w", t.name, err)
	}
	return n > 0, nil
}

func (t *table[T]) Save(ctx context.Context, record *T) error {
	query := t.db.Dialect.UpsertQuery(t.name, t.columns)
	return t.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, t.values(record)...); err != nil {
			slog.Error("Failed to save record", "table", t.name, "error", err)
			return fmt.Errorf("upsert %s: %w", t.name, err)
		}
		return nil
	})
}

func (t *table[T]) DeleteByID(ctx context.Context, id string) error {
	query := t.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.name, t.columns[0]))

	res, err := t.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// flag stores a bool as 0/1 so the same column type works on both dialects.
type flag bool

func (f flag) Value() (driver.Value, error) {
	if f {
		return int64(1), nil
	}
	return int64(0), nil
}

func (f *flag) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case bool:
		*f = flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		*f = string(v) != "0" && len(v) > 0
	case string:
		*f = v != "0" && v != ""
	default:
		return fmt.Errorf("unsupported type for flag scan: %T", value)
	}
	return nil
}
