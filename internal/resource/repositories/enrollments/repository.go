// Package enrollments stores enrollments.
package enrollments

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type Repository interface {
	// Create inserts atomically with respect to the (student, course)
	// pair and returns common.ErrorAlreadyExists for a duplicate.
	Create(ctx context.Context, e *models.Enrollment) (*models.Enrollment, error)

	// ListViews returns every enrollment with the student's name and the
	// course title resolved, nil where the referenced row is absent.
	ListViews(ctx context.Context) ([]models.EnrollmentView, error)
}
