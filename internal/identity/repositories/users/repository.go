// Package users declares the credential store contract and its SQL and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/identity/models"
)

// Repository persists identities keyed by username.
type Repository interface {
	// Create inserts the identity atomically with respect to username
	// uniqueness. It returns common.ErrorAlreadyExists if the username
	// is taken.
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)

	// GetByUserName returns common.ErrorNotFound for unknown usernames.
	GetByUserName(ctx context.Context, userName string) (*models.Identity, error)

	// List returns every identity ordered by creation time.
	List(ctx context.Context) ([]*models.Identity, error)
}
