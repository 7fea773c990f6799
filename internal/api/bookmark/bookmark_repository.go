package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fmcarvalho/linkmark/internal/api"
	"github.com/fmcarvalho/linkmark/internal/types"
)

var _ BookmarkRepo = (*PostgresBookmarkRepo)(nil)

// BookmarkRepo persists bookmarks. Every query is pinned to the owning
// user_id: a bookmark that belongs to someone else is indistinguishable
// from one that does not exist.
type BookmarkRepo interface {
	List(ctx context.Context, userID string) ([]types.Bookmark, error)
	Create(ctx context.Context, userID string, params types.CreateBookmarkParams) (*types.Bookmark, error)
	GetByID(ctx context.Context, userID, bookmarkID string) (*types.Bookmark, error)
	Update(ctx context.Context, userID, bookmarkID string, params types.UpdateBookmarkParams) (*types.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

type PostgresBookmarkRepo struct {
	logger *slog.Logger
	pgpool api.DBPool
}

func NewPostgresBookmarkRepo(pgpool api.DBPool, logger *slog.Logger) *PostgresBookmarkRepo {
	return &PostgresBookmarkRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresBookmarkRepo) List(ctx context.Context, userID string) ([]types.Bookmark, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, user_id, title, link, description, created_at, updated_at
         FROM bookmarks WHERE user_id = $1
         ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: query failed: %w", err)
	}
	defer rows.Close()

	// Empty result must serialize as [], not null.
	bookmarks := []types.Bookmark{}
	for rows.Next() {
		var b types.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list bookmarks: scan failed: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: rows error: %w", err)
	}
	return bookmarks, nil
}

func (r *PostgresBookmarkRepo) Create(ctx context.Context, userID string, params types.CreateBookmarkParams) (*types.Bookmark, error) {
	var b types.Bookmark
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO bookmarks (user_id, title, link, description)
         VALUES ($1, $2, $3, $4)
         RETURNING id, user_id, title, link, description, created_at, updated_at`,
		userID, params.Title, params.Link, params.Description).Scan(
		&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create bookmark: db insert failed: %w", err)
	}
	return &b, nil
}

func (r *PostgresBookmarkRepo) GetByID(ctx context.Context, userID, bookmarkID string) (*types.Bookmark, error) {
	var b types.Bookmark
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, user_id, title, link, description, created_at, updated_at
         FROM bookmarks WHERE id = $1 AND user_id = $2`,
		bookmarkID, userID).Scan(
		&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bookmark", types.ErrNotFound)
		}
		return nil, fmt.Errorf("get bookmark: query failed: %w", err)
	}
	return &b, nil
}

func (r *PostgresBookmarkRepo) Update(ctx context.Context, userID, bookmarkID string, params types.UpdateBookmarkParams) (*types.Bookmark, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{bookmarkID, userID}

	addClause := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	addClause("title", params.Title)
	addClause("link", params.Link)
	addClause("description", params.Description)

	query := fmt.Sprintf(
		`UPDATE bookmarks SET %s WHERE id = $1 AND user_id = $2
         RETURNING id, user_id, title, link, description, created_at, updated_at`,
		strings.Join(setClauses, ", "))

	var b types.Bookmark
	err := r.pgpool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bookmark", types.ErrNotFound)
		}
		return nil, fmt.Errorf("update bookmark: db update failed: %w", err)
	}
	return &b, nil
}

func (r *PostgresBookmarkRepo) Delete(ctx context.Context, userID, bookmarkID string) error {
	tag, err := r.pgpool.Exec(ctx,
		"DELETE FROM bookmarks WHERE id = $1 AND user_id = $2",
		bookmarkID, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: db delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bookmark", types.ErrNotFound)
	}
	return nil
}
