package client

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
)

type Client interface {
	Register(ctx context.Context, username, password, role string) error
	Login(ctx context.Context, username, password string) (string, error)
	Introspect(ctx context.Context, token string) (*common.Principal, error)
	ListCourses(ctx context.Context, token string) ([]*models.Course, error)
	CreateCourse(ctx context.Context, token, title, description string) (*models.Course, error)
	Enroll(ctx context.Context, token, courseTitle string) (*models.Course, error)
	Ping(ctx context.Context) error
}
