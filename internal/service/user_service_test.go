package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

type countingUserRepo struct {
	repository.UserRepository
	saves int
}

func (r *countingUserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.saves++
	return r.UserRepository.Save(ctx, u)
}

func newUserServiceForTest(t *testing.T) (*UserService, *countingUserRepo, *auth.TokenManager, events.Dispatcher) {
	t.Helper()
	tokens, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenIssuer: "shop", TokenTTLHours: 24})
	require.NoError(t, err)

	repo := &countingUserRepo{UserRepository: repository.NewMemoryUserRepository()}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewUserService(UserDependencies{
		UserRepo:   repo,
		Hasher:     auth.NewBcryptHasher(bcrypt.MinCost),
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	return svc, repo, tokens, dispatcher
}

func TestUserService_Signup(t *testing.T) {
	svc, repo, _, dispatcher := newUserServiceForTest(t)

	var got []events.Event
	dispatcher.Subscribe(events.EventUserSignedUp, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	user, err := svc.Signup(context.Background(), "alice@example.com", "alice", "StrongPass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "StrongPass123!", user.PasswordHash)
	assert.Equal(t, 1, repo.saves)

	require.Len(t, got, 1)
	assert.Equal(t, user.ID, got[0].UserID)
	assert.NotEmpty(t, got[0].ID)
}

func TestUserService_SignupEmptyEmail(t *testing.T) {
	svc, repo, _, _ := newUserServiceForTest(t)

	for _, email := range []string{"", "   "} {
		_, err := svc.Signup(context.Background(), email, "bob", "pw")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	assert.Zero(t, repo.saves)
}

func TestUserService_SignupDuplicateEmailDoesNotWrite(t *testing.T) {
	svc, repo, _, _ := newUserServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "dup@example.com", "first", "pw1")
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)

	_, err = svc.Signup(ctx, "dup@example.com", "second", "pw2")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.saves)
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "carol@example.com", "carol", "right-password")
	require.NoError(t, err)

	user, ok, err := svc.Authenticate(ctx, "carol@example.com", "right-password")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created.ID, user.ID)

	_, ok, err = svc.Authenticate(ctx, "carol@example.com", "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.Authenticate(ctx, "nobody@example.com", "right-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_Signin(t *testing.T) {
	svc, _, tokens, _ := newUserServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "dave@example.com", "dave", "pw")
	require.NoError(t, err)

	user, token, exp, err := svc.Signin(ctx, "dave@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.False(t, exp.IsZero())

	subject, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, subject)

	_, _, _, err = svc.Signin(ctx, "dave@example.com", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.EqualError(t, err, "Invalid email or password")
}

func TestUserService_GetByID(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "erin@example.com", "", "pw")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "erin@example.com", got.Email)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

type racingUserRepo struct {
	repository.UserRepository
}

func (racingUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (racingUserRepo) Save(context.Context, *domain.User) (*domain.User, error) {
	return nil, repository.ErrDuplicateEmail
}

func TestUserService_SignupUniqueViolation(t *testing.T) {
	svc := NewUserService(UserDependencies{
		UserRepo: racingUserRepo{},
		Hasher:   auth.NewBcryptHasher(bcrypt.MinCost),
	})

	_, err := svc.Signup(context.Background(), "race@example.com", "", "pw")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash boom") }
func (failingHasher) Verify(string, string) bool  { return false }

func TestUserService_SignupHashFailure(t *testing.T) {
	svc := NewUserService(UserDependencies{
		UserRepo: repository.NewMemoryUserRepository(),
		Hasher:   failingHasher{},
	})

	_, err := svc.Signup(context.Background(), "x@example.com", "", "pw")
	assert.EqualError(t, err, "hash boom")
}
