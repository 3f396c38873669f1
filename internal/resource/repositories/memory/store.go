// Package memory is a mutex-guarded in-memory resource store with the same
// uniqueness and referential rules as the SQL schema.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type pairKey struct {
	studentID string
	courseID  string
}

type Store struct {
	mu          sync.Mutex
	users       map[string]models.User
	courses     map[string]models.Course
	enrollments map[pairKey]models.Enrollment
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]models.User),
		courses:     make(map[string]models.Course),
		enrollments: make(map[pairKey]models.Enrollment),
	}
}

func (s *Store) Users() *UsersRepository             { return &UsersRepository{s: s} }
func (s *Store) Courses() *CoursesRepository         { return &CoursesRepository{s: s} }
func (s *Store) Enrollments() *EnrollmentsRepository { return &EnrollmentsRepository{s: s} }

type UsersRepository struct{ s *Store }

func (r *UsersRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *UsersRepository) List(ctx context.Context) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		result = append(result, &u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type CoursesRepository struct{ s *Store }

func (r *CoursesRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[course.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.s.courses[course.ID] = *course
	return course, nil
}

func (r *CoursesRepository) GetByTitle(ctx context.Context, title string) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.sortedCourses() {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *CoursesRepository) List(ctx context.Context) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.sortedCourses(), nil
}

// sortedCourses must be called with mu held.
func (s *Store) sortedCourses() []*models.Course {
	result := make([]*models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

type EnrollmentsRepository struct{ s *Store }

// Create fails with common.ErrorNotFound when the course does not exist.
func (r *EnrollmentsRepository) Create(ctx context.Context, e *models.Enrollment) (*models.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[e.CourseID]; !ok {
		return nil, common.ErrorNotFound
	}
	key := pairKey{studentID: e.StudentID, courseID: e.CourseID}
	if _, ok := r.s.enrollments[key]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.s.enrollments[key] = *e
	return e, nil
}

func (r *EnrollmentsRepository) ListViews(ctx context.Context) ([]models.EnrollmentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := make([]models.Enrollment, 0, len(r.s.enrollments))
	for _, e := range r.s.enrollments {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})

	result := make([]models.EnrollmentView, 0, len(list))
	for _, e := range list {
		var v models.EnrollmentView
		if u, ok := r.s.users[e.StudentID]; ok {
			v.User = &u.Name
		}
		if c, ok := r.s.courses[e.CourseID]; ok {
			v.Course = &c.Title
		}
		result = append(result, v)
	}
	return result, nil
}
