// Package sqlstoretest opens throwaway SQLite-backed stores for tests.
package sqlstoretest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore"
)

// New returns a migrated store on a fresh database file under t.TempDir().
// It is closed when the test ends.
func New(t *testing.T) *sqlstore.Store {
	t.Helper()

	store, err := sqlstore.Open(config.Database{
		Driver:   "sqlite3",
		Name:     filepath.Join(t.TempDir(), "library.db"),
		MaxConns: 4,
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { store.Close() })
	return store
}
