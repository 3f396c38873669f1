package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/coursekeeper/internal/client/client"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs answers getSimpleText prompts from texts in order.
func stubInputs(t *testing.T, password []byte, texts ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	next := func() string {
		if len(texts) == 0 {
			return ""
		}
		s := texts[0]
		texts = texts[1:]
		return s
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getMultiline = origML
	})
}

type fakeSessions struct {
	regUser, regRole string
	regPass          []byte
	regErr           error

	loginUser string
	loginErr  error

	whoErr error

	logoutCalled bool
	logoutErr    error
}

func (f *fakeSessions) Register(_ context.Context, user string, pass []byte, role string) error {
	f.regUser, f.regPass, f.regRole = user, append([]byte(nil), pass...), role
	return f.regErr
}
func (f *fakeSessions) Login(_ context.Context, user string, _ []byte) error {
	f.loginUser = user
	return f.loginErr
}
func (f *fakeSessions) WhoAmI(context.Context) (string, *common.Principal, error) {
	if f.whoErr != nil {
		return "", nil, f.whoErr
	}
	return "alice", &common.Principal{SubjectID: "u-1", Role: common.RoleStudent}, nil
}
func (f *fakeSessions) Token(context.Context) (string, error) { return "tok", nil }
func (f *fakeSessions) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeSessions) Ping(context.Context) error { return nil }

type fakeCourses struct {
	err         error
	title, desc string
}

func (f *fakeCourses) List(context.Context) ([]*models.Course, error) {
	return []*models.Course{{ID: "c-1", Title: "CS101", Description: "intro"}}, f.err
}
func (f *fakeCourses) Create(_ context.Context, title, desc string) (*models.Course, error) {
	f.title, f.desc = title, desc
	if f.err != nil {
		return nil, f.err
	}
	return &models.Course{ID: "c-2", Title: title, Description: desc}, nil
}
func (f *fakeCourses) Enroll(_ context.Context, title string) (*models.Course, error) {
	f.title = title
	if f.err != nil {
		return nil, f.err
	}
	return &models.Course{ID: "c-1", Title: title}, nil
}

func newTestApp() (*App, *fakeSessions, *fakeCourses, *bytes.Buffer) {
	fs, fc, out := &fakeSessions{}, &fakeCourses{}, &bytes.Buffer{}
	return &App{sessions: fs, courses: fc, out: out}, fs, fc, out
}

func TestRegister_Success(t *testing.T) {
	a, fs, _, out := newTestApp()
	stubInputs(t, []byte("secret"), "alice", "Student")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", fs.regUser)
	assert.Equal(t, "secret", string(fs.regPass))
	assert.Equal(t, "Student", fs.regRole)
	assert.Contains(t, out.String(), "User registered successfully")
}

func TestRegister_WipesPassword(t *testing.T) {
	a, _, _, _ := newTestApp()
	pw := []byte("secret")
	stubInputs(t, pw, "alice", "Student")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogin(t *testing.T) {
	a, fs, _, out := newTestApp()
	stubInputs(t, []byte("pw1"), "alice")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "alice", fs.loginUser)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Failure(t *testing.T) {
	a, fs, _, out := newTestApp()
	fs.loginErr = client.ErrUnauthorized
	stubInputs(t, []byte("bad"), "alice")

	assert.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "unauthorized")
}

func TestWhoAmI(t *testing.T) {
	a, fs, _, out := newTestApp()

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "alice: user_id=u-1 scope=Student\n", out.String())

	fs.whoErr = client.ErrNotLoggedIn
	assert.Error(t, a.WhoAmI(context.Background()))
}

func TestLogout(t *testing.T) {
	a, fs, _, _ := newTestApp()
	a.userName = "alice"

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, fs.logoutCalled)
	assert.False(t, a.isLoggedIn())

	fs.logoutErr = errors.New("clean-fail")
	assert.Error(t, a.Logout(context.Background()))
}

func TestCourseCommands(t *testing.T) {
	a, _, fc, out := newTestApp()
	ctx := context.Background()

	require.NoError(t, a.ListCourses(ctx))
	assert.Contains(t, out.String(), "c-1  CS101  intro")

	stubInputs(t, nil, "CS102", "advanced\ntopics", "CS101")
	require.NoError(t, a.CreateCourse(ctx))
	assert.Equal(t, "CS102", fc.title)
	assert.Equal(t, "advanced\ntopics", fc.desc)

	require.NoError(t, a.Enroll(ctx))
	assert.Equal(t, "CS101", fc.title)
	assert.Contains(t, out.String(), "Enrolled in CS101 (c-1)")

	fc.err = client.ErrNotLoggedIn
	assert.Error(t, a.Enroll(ctx))
	assert.Contains(t, out.String(), "Please log in first")
}
