package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CredentialHasher produces and verifies password digests.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer issues identity tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// UserService coordinates signup and signin flows.
type UserService struct {
	users      repository.UserRepository
	hasher     CredentialHasher
	tokens     TokenIssuer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     CredentialHasher
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Signup registers a new account. The returned user carries the generated id.
func (s *UserService) Signup(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewInvalidArgument("email is required")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateEmail(email)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Save(ctx, &domain.User{
		Email:        email,
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
	})
	if err != nil {
		// lost the race against a concurrent signup
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(email)
		}
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:   events.EventUserSignedUp,
		UserID: user.ID,
		Payload: events.UserSignedUpPayload{
			Email:    user.Email,
			Username: user.Username,
		},
	})
	return user, nil
}

// Authenticate reports whether password verifies for the account with email.
// An unknown email is a negative result, not an error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, false, nil
	}
	return user, true, nil
}

// Signin authenticates and issues a token for the user.
func (s *UserService) Signin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, ok, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !ok {
		s.logger.Debug("signin rejected")
		return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GetByID loads a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}
