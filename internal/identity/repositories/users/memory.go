package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/models"
)

// MemoryRepository is a mutex-guarded credential store with the same
// atomic check-and-insert semantics as the SQL one.
type MemoryRepository struct {
	mu     sync.Mutex
	byName map[string]models.Identity
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]models.Identity)}
}

func (r *MemoryRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[identity.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.byName[identity.UserName] = *identity

	return identity, nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &identity, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Identity, 0, len(r.byName))
	for _, identity := range r.byName {
		result = append(result, &identity)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}
