package services

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/client/client"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

// CourseService calls the gated resource endpoints with the assertion held
// by a SessionService.
type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, title, description string) (*models.Course, error)
	Enroll(ctx context.Context, courseTitle string) (*models.Course, error)
}

type courseService struct {
	client   client.Client
	sessions SessionService
}

func NewCourseService(c client.Client, s SessionService) CourseService {
	return &courseService{client: c, sessions: s}
}

func (s *courseService) List(ctx context.Context) ([]*models.Course, error) {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.ListCourses(ctx, token)
}

func (s *courseService) Create(ctx context.Context, title, description string) (*models.Course, error) {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.CreateCourse(ctx, token, title, description)
}

func (s *courseService) Enroll(ctx context.Context, courseTitle string) (*models.Course, error) {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Enroll(ctx, token, courseTitle)
}
