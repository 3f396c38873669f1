// Package users stores provisioned user profiles.
package users

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type Repository interface {
	// Create returns common.ErrorAlreadyExists if the id is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
