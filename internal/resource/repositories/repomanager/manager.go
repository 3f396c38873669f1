// Package repomanager wires resource repositories to a database handle and
// runs the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/courses"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/enrollments"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Courses(db dbx.DBTX) courses.Repository
	Enrollments(db dbx.DBTX) enrollments.Repository
}
