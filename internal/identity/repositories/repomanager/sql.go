package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/migrations"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repositories for PostgreSQL or
// SQLite, depending on the goose dialect it was built with.
type SQLRepositoryManager struct {
	dialect string
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded identity schema.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewSQLRepositoryManager returns a manager for the given database/sql driver.
func NewSQLRepositoryManager(driver string) (RepositoryManager, error) {
	dialect, err := dbx.Dialect(driver)
	if err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}
