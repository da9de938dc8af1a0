package sqlstore

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/aanand-mishra/library-api/internal/config"

	// Blank imports: side-effect only (register the "postgres" and
	// "sqlite3" drivers with database/sql).
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string

	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string

	// ReturningID is set when the engine cannot report LastInsertId and the
	// insert must use INSERT ... RETURNING id instead.
	ReturningID bool

	// Schema creates both tables if they are missing.
	Schema []string

	dsn func(cfg config.Database) string
}

func questionMark(int) string { return "?" }

func dollar(n int) string { return "$" + strconv.Itoa(n) }

var MySQL = Dialect{
	Driver:      "mysql",
	Placeholder: questionMark,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS students (
			id         INT AUTO_INCREMENT PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			class      VARCHAR(255) NOT NULL,
			student_id VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id       INT AUTO_INCREMENT PRIMARY KEY,
			title    VARCHAR(255) NOT NULL,
			author   VARCHAR(255) NOT NULL,
			isbn     VARCHAR(255) NOT NULL,
			quantity INT NOT NULL DEFAULT 0
		)`,
	},
	dsn: func(cfg config.Database) string {
		c := mysql.NewConfig()
		c.User = cfg.User
		c.Passwd = cfg.Password
		c.Net = "tcp"
		c.Addr = net.JoinHostPort(cfg.Host, portOr(cfg.Port, "3306"))
		c.DBName = cfg.Name
		// Report matched rows, not changed rows, so that an UPDATE writing
		// identical values is not mistaken for a missing id.
		c.ClientFoundRows = true
		return c.FormatDSN()
	},
}

var Postgres = Dialect{
	Driver:      "postgres",
	Placeholder: dollar,
	ReturningID: true,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS students (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			class      TEXT NOT NULL,
			student_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id       SERIAL PRIMARY KEY,
			title    TEXT NOT NULL,
			author   TEXT NOT NULL,
			isbn     TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0
		)`,
	},
	dsn: func(cfg config.Database) string {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, portOr(cfg.Port, "5432")),
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	},
}

var SQLite = Dialect{
	Driver:      "sqlite3",
	Placeholder: questionMark,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			class      TEXT NOT NULL,
			student_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			title    TEXT    NOT NULL,
			author   TEXT    NOT NULL,
			isbn     TEXT    NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0
		)`,
	},
	// Name is the database file path.
	dsn: func(cfg config.Database) string { return cfg.Name },
}

// DialectFor returns the dialect registered under a config driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite3", "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DSN renders the data source name for cfg.
func (d Dialect) DSN(cfg config.Database) string {
	return d.dsn(cfg)
}

func portOr(port, def string) string {
	if port == "" {
		return def
	}
	return port
}
