package bookmark

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fmcarvalho/linkmark/internal/types"
)

var _ BookmarkService = (*BookmarkServiceImpl)(nil)

type BookmarkService interface {
	List(ctx context.Context, userID string) ([]types.Bookmark, error)
	Create(ctx context.Context, userID string, params types.CreateBookmarkParams) (*types.Bookmark, error)
	GetByID(ctx context.Context, userID, bookmarkID string) (*types.Bookmark, error)
	Update(ctx context.Context, userID, bookmarkID string, params types.UpdateBookmarkParams) (*types.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

type BookmarkServiceImpl struct {
	logger *slog.Logger
	repo   BookmarkRepo
}

func NewBookmarkService(repo BookmarkRepo, logger *slog.Logger) *BookmarkServiceImpl {
	return &BookmarkServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *BookmarkServiceImpl) List(ctx context.Context, userID string) ([]types.Bookmark, error) {
	return s.repo.List(ctx, userID)
}

func (s *BookmarkServiceImpl) Create(ctx context.Context, userID string, params types.CreateBookmarkParams) (*types.Bookmark, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", types.ErrValidation)
	}
	if params.Link == "" {
		return nil, fmt.Errorf("%w: link is required", types.ErrValidation)
	}
	if !validLink(params.Link) {
		return nil, fmt.Errorf("%w: link is not a valid URL", types.ErrValidation)
	}

	b, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Bookmark created",
		slog.String("user_id", userID), slog.String("bookmark_id", b.ID))
	return b, nil
}

func (s *BookmarkServiceImpl) GetByID(ctx context.Context, userID, bookmarkID string) (*types.Bookmark, error) {
	return s.repo.GetByID(ctx, userID, bookmarkID)
}

func (s *BookmarkServiceImpl) Update(ctx context.Context, userID, bookmarkID string, params types.UpdateBookmarkParams) (*types.Bookmark, error) {
	if params.Link != nil && !validLink(*params.Link) {
		return nil, fmt.Errorf("%w: link is not a valid URL", types.ErrValidation)
	}
	return s.repo.Update(ctx, userID, bookmarkID, params)
}

func (s *BookmarkServiceImpl) Delete(ctx context.Context, userID, bookmarkID string) error {
	return s.repo.Delete(ctx, userID, bookmarkID)
}

func validLink(link string) bool {
	u, err := url.Parse(link)
	return err == nil && u.Scheme != "" && u.Host != ""
}
