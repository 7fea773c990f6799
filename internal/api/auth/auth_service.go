package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fmcarvalho/linkmark/app/observability/metrics"
	"github.com/fmcarvalho/linkmark/config"
	"github.com/fmcarvalho/linkmark/internal/api"
	"github.com/fmcarvalho/linkmark/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService orchestrates credential registration and verification.
type AuthService interface {
	// SignUp registers a new user and returns a fresh access token.
	SignUp(ctx context.Context, email, password string) (string, error)

	// SignIn verifies credentials and returns a fresh access token.
	SignIn(ctx context.Context, email, password string) (string, error)
}

type AuthServiceImpl struct {
	logger  *slog.Logger
	repo    AuthRepo
	hasher  Hasher
	issuer  *TokenIssuer
	authCfg config.AuthConfig
	metrics *metrics.AppMetrics
}

// NewAuthService wires the credential store, hasher and token issuer
// together. metrics may be nil (tests).
func NewAuthService(repo AuthRepo, hasher Hasher, issuer *TokenIssuer, authCfg config.AuthConfig, m *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:  logger,
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		authCfg: authCfg,
		metrics: m,
	}
}

// SignUp validates input before any storage or crypto work, hashes the
// password, persists the user and issues a token. Duplicate emails surface
// as types.ErrConflict straight from the unique constraint.
func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password string) (string, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return "", err
	}

	hashStart := time.Now()
	passwordHash, err := s.hasher.Hash(password)
	if s.metrics != nil {
		s.metrics.PasswordHashDuration.Record(ctx, time.Since(hashStart).Seconds())
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInternal, err)
	}

	queryStart := time.Now()
	user, err := s.repo.CreateUser(ctx, email, passwordHash)
	if s.metrics != nil {
		s.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(queryStart).Seconds())
	}
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			s.logger.WarnContext(ctx, "Signup rejected: duplicate email")
			return "", err
		}
		s.logger.ErrorContext(ctx, "Signup failed to persist user", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", types.ErrInternal, err)
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Signup failed to issue token", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", types.ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.SignupRequestsTotal.Add(ctx, 1)
	}
	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID))
	return token, nil
}

// SignIn looks the user up by email and verifies the password. A missing
// account and a wrong password produce the identical error so callers cannot
// enumerate registered addresses.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", types.ErrValidation)
	}

	queryStart := time.Now()
	user, err := s.repo.GetUserByEmail(ctx, email)
	if s.metrics != nil {
		s.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(queryStart).Seconds())
	}
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", types.ErrUnauthenticated)
		}
		s.logger.ErrorContext(ctx, "Signin lookup failed", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", types.ErrInternal, err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", fmt.Errorf("%w: invalid credentials", types.ErrUnauthenticated)
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Signin failed to issue token", slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", types.ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.SigninRequestsTotal.Add(ctx, 1)
	}
	return token, nil
}

func (s *AuthServiceImpl) validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", types.ErrValidation)
	}
	if !api.ValidEmail(email) {
		return fmt.Errorf("%w: email is not a valid address", types.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", types.ErrValidation)
	}
	if len(password) < s.authCfg.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", types.ErrValidation, s.authCfg.PasswordMinLength)
	}
	return nil
}
