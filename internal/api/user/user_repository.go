package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fmcarvalho/linkmark/internal/api"
	"github.com/fmcarvalho/linkmark/internal/types"
)

const uniqueViolationCode = "23505"

var _ UserRepo = (*PostgresUserRepo)(nil)

type UserRepo interface {
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) (*types.UserProfile, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool api.DBPool
}

func NewPostgresUserRepo(pgpool api.DBPool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresUserRepo) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	var profile types.UserProfile
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, created_at, updated_at
         FROM users WHERE id = $1`,
		userID).Scan(&profile.ID, &profile.Email, &profile.FirstName, &profile.LastName,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", types.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: query failed: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies the non-nil fields of params to the caller's row.
// The WHERE clause is pinned to userID, so a caller can only ever mutate
// their own record.
func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, userID string, params types.UpdateProfileParams) (*types.UserProfile, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{userID}

	addClause := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	addClause("email", params.Email)
	addClause("first_name", params.FirstName)
	addClause("last_name", params.LastName)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $1
         RETURNING id, email, first_name, last_name, created_at, updated_at`,
		strings.Join(setClauses, ", "))

	var profile types.UserProfile
	err := r.pgpool.QueryRow(ctx, query, args...).Scan(
		&profile.ID, &profile.Email, &profile.FirstName, &profile.LastName,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: email already registered", types.ErrConflict)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", types.ErrNotFound)
		}
		return nil, fmt.Errorf("update profile: db update failed: %w", err)
	}
	return &profile, nil
}
