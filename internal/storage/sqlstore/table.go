package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/library-api/internal/storage"
)

// Input is what a Table needs from a validated payload: the column values
// in schema order, and a way to build the record once the id is known.
type Input[T any] interface {
	Values() []any
	Record(id int64) T
}

// RowScanner is satisfied by both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Table is a storage.Repository over one SQL table. The statements are
// rendered once, at construction, for the store's dialect.
type Table[T any, In Input[T]] struct {
	db      *sql.DB
	name    string
	scan    func(RowScanner) (T, error)
	dialect Dialect

	listSQL   string
	getSQL    string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// NewTable builds a Table for name whose mutable columns are columns, in the
// same order as In.Values(). The id column is always "id". scan reads a row
// selected as id followed by columns.
func NewTable[T any, In Input[T]](db *sql.DB, d Dialect, name string, columns []string, scan func(RowScanner) (T, error)) *Table[T, In] {
	selectCols := "id, " + strings.Join(columns, ", ")

	ph := make([]string, len(columns))
	set := make([]string, len(columns))
	for i, c := range columns {
		ph[i] = d.Placeholder(i + 1)
		set[i] = c + " = " + d.Placeholder(i+1)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(columns, ", "), strings.Join(ph, ", "))
	if d.ReturningID {
		insert += " RETURNING id"
	}

	return &Table[T, In]{
		db:      db,
		name:    name,
		scan:    scan,
		dialect: d,

		listSQL:   fmt.Sprintf("SELECT %s FROM %s", selectCols, name),
		getSQL:    fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", selectCols, name, d.Placeholder(1)),
		insertSQL: insert,
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
			name, strings.Join(set, ", "), d.Placeholder(len(columns)+1)),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = %s", name, d.Placeholder(1)),
	}
}

func (t *Table[T, In]) List(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, t.listSQL)
	if err != nil {
		return nil, fmt.Errorf("%s.List: query: %w", t.name, err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	out := make([]T, 0)
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s.List: scan row: %w", t.name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s.List: rows iteration: %w", t.name, err)
	}
	return out, nil
}

func (t *Table[T, In]) Get(ctx context.Context, id int64) (T, error) {
	rec, err := t.scan(t.db.QueryRowContext(ctx, t.getSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s.Get %d: %w", t.name, id, storage.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s.Get %d: %w", t.name, id, err)
	}
	return rec, nil
}

func (t *Table[T, In]) Create(ctx context.Context, in In) (T, error) {
	var zero T
	var id int64

	if t.dialect.ReturningID {
		if err := t.db.QueryRowContext(ctx, t.insertSQL, in.Values()...).Scan(&id); err != nil {
			return zero, fmt.Errorf("%s.Create: insert: %w", t.name, err)
		}
		return in.Record(id), nil
	}

	res, err := t.db.ExecContext(ctx, t.insertSQL, in.Values()...)
	if err != nil {
		return zero, fmt.Errorf("%s.Create: insert: %w", t.name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("%s.Create: last insert id: %w", t.name, err)
	}
	return in.Record(id), nil
}

func (t *Table[T, In]) Update(ctx context.Context, id int64, in In) (T, error) {
	var zero T

	args := append(in.Values(), id)
	if err := t.execOne(ctx, t.updateSQL, args...); err != nil {
		return zero, fmt.Errorf("%s.Update %d: %w", t.name, id, err)
	}
	return in.Record(id), nil
}

func (t *Table[T, In]) Delete(ctx context.Context, id int64) error {
	if err := t.execOne(ctx, t.deleteSQL, id); err != nil {
		return fmt.Errorf("%s.Delete %d: %w", t.name, id, err)
	}
	return nil
}

// execOne runs a statement that targets a single row by id and maps zero
// affected rows to storage.ErrNotFound.
func (t *Table[T, In]) execOne(ctx context.Context, query string, args ...any) error {
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
