package enrollments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Enrollment) (*models.Enrollment, error) {

	query :=
		`INSERT INTO enrollments (id, student_id, course_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, course_id) DO NOTHING
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, e.ID, e.StudentID, e.CourseID, e.CreatedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) ListViews(ctx context.Context) ([]models.EnrollmentView, error) {
	query :=
		`SELECT u.name, c.title FROM enrollments e
		 LEFT JOIN users u ON u.id = e.student_id
		 LEFT JOIN courses c ON c.id = e.course_id
		 ORDER BY e.created_at, e.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.EnrollmentView, 0)
	for rows.Next() {
		var name, title sql.NullString
		if err := rows.Scan(&name, &title); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		var v models.EnrollmentView
		if name.Valid {
			v.User = &name.String
		}
		if title.Valid {
			v.Course = &title.String
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
