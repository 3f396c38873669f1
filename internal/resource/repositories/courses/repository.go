// Package courses stores courses.
package courses

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type Repository interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)

	// GetByTitle returns the earliest created course with the given title,
	// or common.ErrorNotFound.
	GetByTitle(ctx context.Context, title string) (*models.Course, error)

	// List returns all courses ordered by creation time.
	List(ctx context.Context) ([]*models.Course, error)
}
