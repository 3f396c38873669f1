package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/models"
)

// PostgresRepository is the SQL credential store. The statements are
// portable between PostgreSQL (pgx) and SQLite.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {

	query :=
		`INSERT INTO users (id, username, password_hash, salt, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (username) DO NOTHING
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query,
		identity.ID, identity.UserName, identity.PasswordHash, identity.Salt, string(identity.Role), identity.CreatedAt).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.Identity, error) {
	query :=
		`SELECT id, username, password_hash, salt, role FROM users
		 WHERE username = $1
		 `

	identity := &models.Identity{}
	var role string
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&identity.ID, &identity.UserName, &identity.PasswordHash, &identity.Salt, &role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	identity.Role = common.Role(role)

	return identity, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Identity, error) {
	query :=
		`SELECT id, username, role FROM users
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Identity, 0)
	for rows.Next() {
		identity := &models.Identity{}
		var role string
		if err := rows.Scan(&identity.ID, &identity.UserName, &role); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		identity.Role = common.Role(role)
		result = append(result, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
