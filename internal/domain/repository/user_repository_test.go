package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"catalog_service/internal/common"
	"catalog_service/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserCreateReturnsGeneratedID(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("A", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user := &model.User{Name: "A", Email: "a@x.com", HashedPassword: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, int64(7), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateUniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestUserFindByEmail(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPgUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, hashed_password, created_at, updated_at`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "hashed_password", "created_at", "updated_at"}).
			AddRow(int64(7), "A", "a@x.com", "hash", now, now))

	user, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "A", user.Name)
	require.Equal(t, "hash", user.HashedPassword)
}

func TestUserFindByEmailNotFound(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}
