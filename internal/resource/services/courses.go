// Package services holds the resource-side business logic: the course and
// enrollment rules and user provisioning. Every operation takes the
// authenticated principal from the caller; request bodies never supply
// identity.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	msgMissingCourseFields = "Missing required fields: title and description are required"
	msgMissingCourseTitle  = "Missing required field: course_title is required"
	msgCourseNotFound      = "Course not found"
	msgAlreadyEnrolled     = "Already enrolled in this course"
	msgOnlyInstructors     = "Only Instructors can create courses"
	msgOnlyStudents        = "Only Students can enroll in courses"
)

type CourseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewCourseService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CourseService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &CourseService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "resource.courses"),
		now:         time.Now,
	}
}

func requireRole(p *common.Principal, role common.Role, msg string) error {
	if p == nil || p.SubjectID == "" || p.Role != role {
		return common.NewError(common.KindUnauthorized, msg, nil)
	}
	return nil
}

// CreateCourse persists a course owned by the calling instructor.
func (s *CourseService) CreateCourse(ctx context.Context, p *common.Principal, title, description string) (*models.Course, error) {
	if err := requireRole(p, common.RoleInstructor, msgOnlyInstructors); err != nil {
		return nil, err
	}
	if title == "" || description == "" {
		return nil, common.NewError(common.KindValidation, msgMissingCourseFields, nil)
	}

	course := &models.Course{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		InstructorID: p.SubjectID,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.repomanager.Courses(s.db).Create(ctx, course)
	if err != nil {
		s.logger.Error(ctx, "course creation failed", "error", err)
		return nil, common.NewError(common.KindInternal, "Course creation failed", err)
	}

	s.logger.Info(ctx, "course created", "course_id", created.ID, "instructor_id", p.SubjectID)
	return created, nil
}

// ListCourses returns every course; any authenticated role may list.
func (s *CourseService) ListCourses(ctx context.Context, p *common.Principal) ([]*models.Course, error) {
	if p == nil || !p.Role.Valid() {
		return nil, common.NewError(common.KindUnauthorized, "Invalid role", nil)
	}

	list, err := s.repomanager.Courses(s.db).List(ctx)
	if err != nil {
		return nil, common.NewError(common.KindInternal, "Failed to retrieve courses", err)
	}
	return list, nil
}

// Enroll enrolls the calling student in the earliest course titled
// courseTitle. The lookup and the insert share one transaction, and the
// insert itself is atomic on (student, course).
func (s *CourseService) Enroll(ctx context.Context, p *common.Principal, courseTitle string) (*models.Course, error) {
	if err := requireRole(p, common.RoleStudent, msgOnlyStudents); err != nil {
		return nil, err
	}
	if courseTitle == "" {
		return nil, common.NewError(common.KindValidation, msgMissingCourseTitle, nil)
	}

	var course *models.Course
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := s.repomanager.Courses(tx).GetByTitle(ctx, courseTitle)
		if err != nil {
			return err
		}

		_, err = s.repomanager.Enrollments(tx).Create(ctx, &models.Enrollment{
			ID:        uuid.NewString(),
			StudentID: p.SubjectID,
			CourseID:  c.ID,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return err
		}

		course = c
		return nil
	})

	switch {
	case err == nil:
		s.logger.Info(ctx, "enrolled", "course_id", course.ID, "student_id", p.SubjectID)
		return course, nil
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.NewError(common.KindNotFound, msgCourseNotFound, err)
	case errors.Is(err, common.ErrorAlreadyExists):
		return nil, common.NewError(common.KindConflict, msgAlreadyEnrolled, err)
	default:
		s.logger.Error(ctx, "enrollment failed", "error", err)
		return nil, common.NewError(common.KindInternal, "Enrollment failed", err)
	}
}

// ListEnrollments is the diagnostic enrollment listing.
func (s *CourseService) ListEnrollments(ctx context.Context) ([]models.EnrollmentView, error) {
	views, err := s.repomanager.Enrollments(s.db).ListViews(ctx)
	if err != nil {
		return nil, common.NewError(common.KindInternal, "Failed to retrieve enrollments", err)
	}
	return views, nil
}
