package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fmcarvalho/linkmark/config"
	"github.com/fmcarvalho/linkmark/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, email, passwordHash string) (*types.UserAuth, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func newTestService(t *testing.T, repo AuthRepo) (*AuthServiceImpl, *TokenIssuer) {
	t.Helper()
	issuer, err := NewTokenIssuer(config.JWTConfig{
		SecretKey:      "test-access-secret",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "test-issuer",
	})
	require.NoError(t, err)

	hasher := NewBcryptHasher(bcrypt.MinCost)
	authCfg := config.AuthConfig{PasswordMinLength: 1, BcryptCost: bcrypt.MinCost}
	return NewAuthService(repo, hasher, issuer, authCfg, nil, slog.Default()), issuer
}

func TestSignUp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, issuer := newTestService(t, mockRepo)
		ctx := context.Background()

		created := &types.UserAuth{ID: "user-123", Email: "a@b.com"}
		mockRepo.On("CreateUser", ctx, "a@b.com", mock.AnythingOfType("string")).Return(created, nil).Once()

		token, err := service.SignUp(ctx, "a@b.com", "123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "a@b.com", claims.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("HashIsNotPlaintext", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)
		ctx := context.Background()

		created := &types.UserAuth{ID: "user-123", Email: "a@b.com"}
		mockRepo.On("CreateUser", ctx, "a@b.com", mock.MatchedBy(func(hash string) bool {
			return hash != "123" && bcrypt.CompareHashAndPassword([]byte(hash), []byte("123")) == nil
		})).Return(created, nil).Once()

		_, err := service.SignUp(ctx, "a@b.com", "123")
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)

		_, err := service.SignUp(context.Background(), "", "123")
		assert.ErrorIs(t, err, types.ErrValidation)
		// Validation failures never reach storage.
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)

		_, err := service.SignUp(context.Background(), "not-an-email", "123")
		assert.ErrorIs(t, err, types.ErrValidation)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)

		_, err := service.SignUp(context.Background(), "a@b.com", "")
		assert.ErrorIs(t, err, types.ErrValidation)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateUser", ctx, "a@b.com", mock.AnythingOfType("string")).
			Return(nil, types.ErrConflict).Once()

		_, err := service.SignUp(ctx, "a@b.com", "another-password")
		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestSignIn(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	user := &types.UserAuth{
		ID:           "user-123",
		Email:        "a@b.com",
		PasswordHash: string(hashedPassword),
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, issuer := newTestService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(user, nil).Once()

		token, err := service.SignIn(ctx, "a@b.com", "123")
		require.NoError(t, err)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EnumerationResistance", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(user, nil).Once()
		mockRepo.On("GetUserByEmail", ctx, "nobody@b.com").Return(nil, types.ErrNotFound).Once()

		_, wrongPasswordErr := service.SignIn(ctx, "a@b.com", "wrong")
		_, unknownUserErr := service.SignIn(ctx, "nobody@b.com", "123")

		// Wrong password and unknown account are indistinguishable.
		assert.ErrorIs(t, wrongPasswordErr, types.ErrUnauthenticated)
		assert.ErrorIs(t, unknownUserErr, types.ErrUnauthenticated)
		assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)

		_, err := service.SignIn(context.Background(), "", "123")
		assert.ErrorIs(t, err, types.ErrValidation)

		_, err = service.SignIn(context.Background(), "a@b.com", "")
		assert.ErrorIs(t, err, types.ErrValidation)

		mockRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByEmail", ctx, "a@b.com").Return(nil, errors.New("connection refused")).Once()

		_, err := service.SignIn(ctx, "a@b.com", "123")
		assert.ErrorIs(t, err, types.ErrInternal)
		assert.NotErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}
