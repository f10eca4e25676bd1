package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect captures what differs between the supported SQL databases.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// GooseDialect returns the dialect name goose expects.
	GooseDialect() string

	// DSN adapts the configured data source name for the driver.
	DSN(dsn string) string

	// RewriteQuery converts ? placeholders if the driver needs another syntax.
	RewriteQuery(query string) string

	// ConfigureConnection applies pool settings and session options.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the directory under migrations/ for this dialect.
	MigrationsSubdir() string

	// UpsertSnapshotQuery inserts or replaces the payload stored under a key.
	// Arguments: storage_key, payload, updated_at.
	UpsertSnapshotQuery() string
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", name)
	}
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
