package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
)

var userColumns = []string{"id", "email", "username", "password_hash", "created_at", "updated_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepository_SaveInsert(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@example.com", "alice", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u1", now, now))

	saved, err := repo.Save(context.Background(), &domain.User{Email: "a@example.com", Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)
	assert.Equal(t, now, saved.CreatedAt)
}

func TestUserRepository_SaveInsertUniqueViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@example.com", "", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Save(context.Background(), &domain.User{Email: "a@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_SaveInsertOtherError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	cause := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@example.com", "", "hash").
		WillReturnError(cause)

	_, err := repo.Save(context.Background(), &domain.User{Email: "a@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_SaveUpdateMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs("a@example.com", "alice", "hash", "ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Save(context.Background(), &domain.User{ID: "ghost", Email: "a@example.com", Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=$1")).
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("u1", "a@example.com", "alice", "hash", now, now))

	user, err := repo.FindByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserRepository_FindByIDMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=$1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
