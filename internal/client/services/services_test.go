package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/coursekeeper/internal/client/client"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := client.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeClient struct {
	loginErr      error
	introspectErr error
	courseErr     error

	lastToken    string
	lastRegister []string
}

func (f *fakeClient) Register(ctx context.Context, username, password, role string) error {
	f.lastRegister = []string{username, password, role}
	return nil
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok-" + username, nil
}

func (f *fakeClient) Introspect(ctx context.Context, token string) (*common.Principal, error) {
	f.lastToken = token
	if f.introspectErr != nil {
		return nil, f.introspectErr
	}
	return &common.Principal{SubjectID: "u-1", Role: common.RoleStudent}, nil
}

func (f *fakeClient) ListCourses(ctx context.Context, token string) ([]*models.Course, error) {
	f.lastToken = token
	return []*models.Course{{ID: "c-1", Title: "CS101"}}, f.courseErr
}

func (f *fakeClient) CreateCourse(ctx context.Context, token, title, description string) (*models.Course, error) {
	f.lastToken = token
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return &models.Course{ID: "c-2", Title: title, Description: description}, nil
}

func (f *fakeClient) Enroll(ctx context.Context, token, courseTitle string) (*models.Course, error) {
	f.lastToken = token
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return &models.Course{ID: "c-1", Title: courseTitle}, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func TestSession_LoginCachesToken(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewSessionService(fc, db)
	ctx := context.Background()

	_, err := s.Token(ctx)
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))

	require.NoError(t, s.Register(ctx, "alice", []byte("pw1"), "Student"))
	assert.Equal(t, []string{"alice", "pw1", "Student"}, fc.lastRegister)

	require.NoError(t, s.Login(ctx, "alice", []byte("pw1")))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", token)

	name, p, err := s.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
	assert.Equal(t, common.RoleStudent, p.Role)
	assert.Equal(t, "tok-alice", fc.lastToken)

	require.NoError(t, s.Logout(ctx))
	_, err = s.Token(ctx)
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))
}

func TestSession_FailedLoginKeepsPreviousState(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewSessionService(fc, db)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice", []byte("pw1")))

	fc.loginErr = client.ErrUnauthorized
	err := s.Login(ctx, "mallory", []byte("x"))
	assert.True(t, errors.Is(err, client.ErrUnauthorized))

	name, err := session.NewSQLiteRepository(db).Get(ctx, session.KeyUserName)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestSession_WhoAmIDropsRejectedToken(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewSessionService(fc, db)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice", []byte("pw1")))

	fc.introspectErr = client.ErrUnavailable
	_, _, err := s.WhoAmI(ctx)
	assert.True(t, errors.Is(err, client.ErrUnavailable))
	_, err = s.Token(ctx)
	require.NoError(t, err, "transport failures keep the cached token")

	fc.introspectErr = client.ErrUnauthorized
	_, _, err = s.WhoAmI(ctx)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	_, err = s.Token(ctx)
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))
}

func TestCourseService(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewSessionService(fc, db)
	cs := NewCourseService(fc, s)
	ctx := context.Background()

	_, err := cs.List(ctx)
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))
	_, err = cs.Create(ctx, "CS101", "intro")
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))
	_, err = cs.Enroll(ctx, "CS101")
	assert.True(t, errors.Is(err, client.ErrNotLoggedIn))

	require.NoError(t, s.Login(ctx, "bob", []byte("pw2")))

	list, err := cs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "tok-bob", fc.lastToken)

	c, err := cs.Create(ctx, "CS101", "intro")
	require.NoError(t, err)
	assert.Equal(t, "intro", c.Description)

	c, err = cs.Enroll(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)

	fc.courseErr = client.ErrUnauthorized
	_, err = cs.Enroll(ctx, "CS101")
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
}

func TestSession_LoginRollsBackOnStoreFailure(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`DROP TABLE session`)
	require.NoError(t, err)

	s := NewSessionService(&fakeClient{}, db)
	err = s.Login(context.Background(), "alice", []byte("pw1"))
	require.Error(t, err)

	err = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error { return nil })
	assert.NoError(t, err, "no transaction left open")
}
