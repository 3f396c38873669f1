package client

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/coursekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/filex"
	"github.com/pressly/goose/v3"
)

// SessionDBName is the sqlite file kept inside the session directory.
const SessionDBName = "session.db"

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the session database at dsn and
// applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := dbx.Open(dbx.DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SessionDSN returns the session database path under $HOME/dirName,
// creating the directory.
func SessionDSN(dirName string) (string, error) {
	dir, err := filex.EnsureHomeSubdDir(dirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SessionDBName), nil
}
