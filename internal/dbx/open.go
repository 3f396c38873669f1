package dbx

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Dialect returns the goose dialect name for a database/sql driver name.
func Dialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Open opens a pool for driver and dsn. For sqlite file DSNs the parent
// directory is created relative to the working directory first.
func Open(driver, dsn string) (*sql.DB, error) {
	if _, err := Dialect(driver); err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		if dir := sqliteDir(dsn); dir != "" {
			if _, err := filex.EnsureSubdDir(dir); err != nil {
				return nil, fmt.Errorf("sqlite data dir: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		// one writer keeps check-then-insert sequences serialized
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// sqliteDir extracts the relative directory of a sqlite file DSN such as
// "data/users.db" or "file:data/users.db?_pragma=...". In-memory and
// absolute DSNs yield "".
func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}
