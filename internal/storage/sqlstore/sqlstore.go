// Package sqlstore implements storage.Repository for students and books on
// top of database/sql.
//
// The *sql.DB held by a Store is the connection pool: it is opened once per
// process, capped at config.Database.MaxConns open connections, and shared
// by every request. Callers beyond the cap wait for a free connection with
// no queue limit and no acquire timeout. A single *sql.DB is safe for
// concurrent use by multiple goroutines.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

var (
	_ storage.Repository[types.Student, types.StudentInput] = (*Table[types.Student, types.StudentInput])(nil)
	_ storage.Repository[types.Book, types.BookInput]       = (*Table[types.Book, types.BookInput])(nil)
)

type Store struct {
	db      *sql.DB
	dialect Dialect

	students *Table[types.Student, types.StudentInput]
	books    *Table[types.Book, types.BookInput]
}

// Open creates the pool for cfg. sql.Open does not dial: an unreachable
// server surfaces as an error on the first query, not here.
func Open(cfg config.Database) (*Store, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.Open: %w", err)
	}

	db, err := sql.Open(d.Driver, d.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlstore.Open: open db: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)

	return New(db, d), nil
}

// New wraps an already opened pool.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:      db,
		dialect: d,
		students: NewTable[types.Student, types.StudentInput](db, d, "students",
			[]string{"name", "class", "student_id"}, scanStudent),
		books: NewTable[types.Book, types.BookInput](db, d, "books",
			[]string{"title", "author", "isbn", "quantity"}, scanBook),
	}
}

func scanStudent(r RowScanner) (types.Student, error) {
	var s types.Student
	err := r.Scan(&s.ID, &s.Name, &s.Class, &s.StudentID)
	return s, err
}

func scanBook(r RowScanner) (types.Book, error) {
	var b types.Book
	err := r.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Quantity)
	return b, err
}

func (s *Store) Students() *Table[types.Student, types.StudentInput] { return s.students }

func (s *Store) Books() *Table[types.Book, types.BookInput] { return s.books }

// Migrate creates the students and books tables if they do not exist.
// CREATE TABLE IF NOT EXISTS is idempotent, so this is safe on every start.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore.Migrate: %w", err)
		}
	}
	return nil
}

// Ping checks that a connection to the store can be made.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
