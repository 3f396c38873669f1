// Package services contains identity-side business logic: the credential
// store operations (register, verify, login) and introspection.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/cryptox"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/auth"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/models"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/repositories/repomanager"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	msgMissingRegisterFields = "Missing required fields: username, password, and role are required"
	msgMissingLoginFields    = "Missing required fields: username and password are required"
	msgInvalidRole           = "Invalid role. Must be 'Student' or 'Instructor'"
	msgUsernameTaken         = "Username already exists"
	msgMissingToken          = "Missing token"
)

// UserService provides the credential store operations and token
// introspection.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.Hasher
	issuer      *auth.Issuer
	verifier    *auth.Verifier
	logger      logging.Logger
	now         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.Hasher,
	issuer *auth.Issuer, verifier *auth.Verifier, logger logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		verifier:    verifier,
		logger:      logger.With("module", "identity.services"),
		now:         time.Now,
	}
}

// Register creates a new identity with a fresh salt. Validation runs before
// the uniqueness check; the uniqueness check itself is the atomic insert.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.Identity, error) {
	if username == "" || password == "" || role == "" {
		return nil, common.NewError(common.KindValidation, msgMissingRegisterFields, nil)
	}
	r, ok := common.ParseRole(role)
	if !ok {
		return nil, common.NewError(common.KindValidation, msgInvalidRole, nil)
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, common.NewError(common.KindInternal, "Registration failed", err)
	}

	identity := &models.Identity{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: s.hasher.Hash(salt, password),
		Salt:         salt,
		Role:         r,
		CreatedAt:    s.now().UTC(),
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewError(common.KindConflict, msgUsernameTaken, err)
		}
		s.logger.Error(ctx, "register failed", "error", err)
		return nil, common.NewError(common.KindInternal, "Registration failed", err)
	}

	s.logger.Info(ctx, "identity registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// VerifyCredentials checks password against the stored salted hash. Unknown
// usernames and wrong passwords are reported identically.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*auth.Principal, error) {
	if username == "" || password == "" {
		return nil, common.NewError(common.KindValidation, msgMissingLoginFields, nil)
	}

	repo := s.repomanager.Users(s.db)
	identity, err := repo.GetByUserName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnHash(password)
			return nil, common.ErrAuth
		}
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		return nil, common.NewError(common.KindInternal, "Login failed", err)
	}

	if !cryptox.Verify(identity.Salt, password, identity.PasswordHash) {
		return nil, common.ErrAuth
	}

	return &auth.Principal{SubjectID: identity.ID, Role: identity.Role}, nil
}

// Login verifies credentials and issues an assertion for the identity.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(principal.SubjectID, principal.Role)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.NewError(common.KindInternal, "Login failed", err)
	}
	return token, nil
}

// Introspect validates an assertion and returns the principal it carries.
func (s *UserService) Introspect(ctx context.Context, token string) (*auth.Principal, error) {
	if token == "" {
		return nil, common.NewError(common.KindValidation, msgMissingToken, nil)
	}
	p, err := s.verifier.Introspect(token)
	if err != nil {
		s.logger.Debug(ctx, "introspection rejected", "kind", common.KindOf(err).String())
		return nil, err
	}
	return p, nil
}

// ListUsers returns every identity; used by the diagnostic listing only.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.Identity, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.NewError(common.KindInternal, "Failed to retrieve users", err)
	}
	return list, nil
}

// burnHash spends the same hashing work as a real comparison.
func (s *UserService) burnHash(password string) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return
	}
	_ = s.hasher.Hash(salt, password)
}
