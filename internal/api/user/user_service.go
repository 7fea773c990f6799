package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fmcarvalho/linkmark/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) (*types.UserProfile, error)
}

// UserServiceImpl serves profile reads through a short-lived in-process
// cache. Profiles change rarely and only through UpdateProfile, which
// evicts the stale entry.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
	cache  *gocache.Cache
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  gocache.New(1*time.Minute, 5*time.Minute),
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	if cached, found := s.cache.Get(userID); found {
		if profile, ok := cached.(*types.UserProfile); ok {
			return profile, nil
		}
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	s.cache.Set(userID, profile, gocache.DefaultExpiration)
	return profile, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) (*types.UserProfile, error) {
	profile, err := s.repo.UpdateProfile(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	s.cache.Delete(userID)
	s.logger.InfoContext(ctx, "User profile updated", slog.String("user_id", userID))
	return profile, nil
}
