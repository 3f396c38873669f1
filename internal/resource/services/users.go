package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/repomanager"
)

const (
	msgMissingUserFields = "Missing required fields: id, name, role, and email are required"
	msgInvalidRole       = "Invalid role. Must be 'Student' or 'Instructor'"
	msgUserExists        = "User already exists"
)

// UserService provisions resource-side user profiles.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &UserService{db: db, repomanager: m, logger: logger.With("module", "resource.users")}
}

// CreateUser stores a profile. An empty notes value is stored as absent.
func (s *UserService) CreateUser(ctx context.Context, id, name, role, email, notes string) (*models.User, error) {
	if id == "" || name == "" || role == "" || email == "" {
		return nil, common.NewError(common.KindValidation, msgMissingUserFields, nil)
	}
	r, ok := common.ParseRole(role)
	if !ok {
		return nil, common.NewError(common.KindValidation, msgInvalidRole, nil)
	}

	user := &models.User{ID: id, Name: name, Role: r, Email: email}
	if notes != "" {
		user.Notes = &notes
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewError(common.KindConflict, msgUserExists, err)
		}
		s.logger.Error(ctx, "user creation failed", "error", err)
		return nil, common.NewError(common.KindInternal, "User creation failed", err)
	}
	return created, nil
}

// ListUsers is the diagnostic user listing.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.NewError(common.KindInternal, "Failed to retrieve users", err)
	}
	return list, nil
}
