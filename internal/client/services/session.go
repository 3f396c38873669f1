// Package services contains application services for the coursekeeper CLI.
// SessionService owns the login state; CourseService runs the gated course
// operations with the cached assertion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/client/client"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
)

// SessionService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an identity on the identity service.
//   - Login: obtain an assertion and cache it with the user name.
//   - WhoAmI: introspect the cached assertion.
//   - Token: return the cached assertion or client.ErrNotLoggedIn.
//   - Logout: forget the cached assertion.
//   - Ping: check both services are reachable.
type SessionService interface {
	Register(ctx context.Context, username string, password []byte, role string) error
	Login(ctx context.Context, username string, password []byte) error
	WhoAmI(ctx context.Context) (string, *common.Principal, error)
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type sessionService struct {
	client client.Client
	db     *sql.DB
}

func NewSessionService(c client.Client, db *sql.DB) SessionService {
	return &sessionService{client: c, db: db}
}

func (s *sessionService) repo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

func (s *sessionService) Register(ctx context.Context, username string, password []byte, role string) error {
	return s.client.Register(ctx, username, string(password), role)
}

// Login authenticates and stores the user name and assertion in a single
// transaction.
func (s *sessionService) Login(ctx context.Context, username string, password []byte) error {
	token, err := s.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, session.KeyUserName, username); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyToken, token)
	})
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	token, err := s.repo(s.db).Get(ctx, session.KeyToken)
	if errors.Is(err, common.ErrorNotFound) {
		return "", client.ErrNotLoggedIn
	}
	return token, err
}

// WhoAmI returns the cached user name and what the identity service says
// about the cached assertion. An assertion the service rejects is dropped.
func (s *sessionService) WhoAmI(ctx context.Context) (string, *common.Principal, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", nil, err
	}

	p, err := s.client.Introspect(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = s.repo(s.db).Delete(ctx, session.KeyToken)
		}
		return "", nil, err
	}

	name, err := s.repo(s.db).Get(ctx, session.KeyUserName)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", nil, err
	}
	return name, p, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
