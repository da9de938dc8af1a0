package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "ENV", "HTTP_HOST", "PORT",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_MAX_CONNS", "DB_AUTO_MIGRATE", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, 3001)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3001, cfg.HTTPServer.Port)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, Database{
		Driver:   "mysql",
		Host:     "localhost",
		User:     "root",
		Name:     "library_management",
		MaxConns: 10,
	}, cfg.Database)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(nil, 3000)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 25, cfg.MaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
http_server:
  port: 4000
database:
  driver: sqlite3
  name: /tmp/library.db
  auto_migrate: true
`), 0o600))

	t.Run("flag", func(t *testing.T) {
		cfg, err := Load([]string{"--config", path}, 3000)
		require.NoError(t, err)

		assert.Equal(t, 4000, cfg.HTTPServer.Port)
		assert.Equal(t, "sqlite3", cfg.Driver)
		assert.True(t, cfg.AutoMigrate)
		assert.Equal(t, 10, cfg.MaxConns)
	})

	t.Run("env var wins over file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", path)
		t.Setenv("PORT", "5000")

		cfg, err := Load(nil, 3000)
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.HTTPServer.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, 3000)
		assert.Error(t, err)
	})
}

func TestLoad_RejectsZeroPool(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_CONNS", "0")

	_, err := Load(nil, 3000)
	assert.Error(t, err)
}

// The two binaries must be able to run side by side from the shipped
// configuration without a port clash.
func TestShippedConfigsUseDistinctPorts(t *testing.T) {
	clearEnv(t)

	library, err := Load([]string{"--config", filepath.Join("..", "..", "config", "local.yaml")}, 3000)
	require.NoError(t, err)
	books, err := Load([]string{"--config", filepath.Join("..", "..", "config", "book-service.yaml")}, 3001)
	require.NoError(t, err)

	assert.Equal(t, 3000, library.HTTPServer.Port)
	assert.Equal(t, 3001, books.HTTPServer.Port)

	example, err := godotenv.Read(filepath.Join("..", "..", ".env.example"))
	require.NoError(t, err)
	assert.NotContains(t, example, "PORT", ".env is shared by both binaries")
}
