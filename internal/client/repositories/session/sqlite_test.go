package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, "t1"))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "t1", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, "old"))
	require.NoError(t, r.Set(ctx, KeyToken, "new"))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, "t"))
	require.NoError(t, r.Set(ctx, KeyUserName, "alice"))

	require.NoError(t, r.Delete(ctx, KeyToken))
	_, err := r.Get(ctx, KeyToken)
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	v, err := r.Get(ctx, KeyUserName)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	require.NoError(t, r.Clear(ctx))
	_, err = r.Get(ctx, KeyUserName)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestDBErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM session").WillReturnError(errors.New("disk gone"))
	mock.ExpectExec("INSERT INTO session").WillReturnError(errors.New("disk gone"))
	mock.ExpectExec("DELETE FROM session").WillReturnError(errors.New("disk gone"))

	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err = r.Get(ctx, KeyToken)
	assert.ErrorContains(t, err, "session get token")
	assert.False(t, errors.Is(err, common.ErrorNotFound))

	assert.ErrorContains(t, r.Set(ctx, KeyToken, "x"), "disk gone")
	assert.ErrorContains(t, r.Clear(ctx), "session clear")
	require.NoError(t, mock.ExpectationsWereMet())
}
