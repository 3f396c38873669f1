package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/courses"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/enrollments"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/memory"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/users"
)

// InMemoryRepositoryManager serves every handle from one in-memory store.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.store.Users() }

func (m *InMemoryRepositoryManager) Courses(dbx.DBTX) courses.Repository { return m.store.Courses() }

func (m *InMemoryRepositoryManager) Enrollments(dbx.DBTX) enrollments.Repository {
	return m.store.Enrollments()
}
