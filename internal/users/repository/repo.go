package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/users/domain"
)

const uniqueViolation = "23505"

// UserRepository provides persistence operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// List returns all users ordered by name ascending.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]domain.User, 0, 16)
	for rows.Next() {
		var (
			idStr string
			u     domain.User
		)
		if err := rows.Scan(&idStr, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, apperrors.Store(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Internal("invalid user id read from store: %v", err)
		}
		u.ID = id
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

// Create inserts a new user. The email pre-check is advisory; the unique
// constraint on email is the real enforcement under concurrent requests.
func (r *UserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM users WHERE email = $1`, req.Email).Scan(&one)
	if err == nil {
		return nil, apperrors.Duplicate("User with email '%s' already exists", req.Email)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Store(err)
	}

	user := domain.New(req)

	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID.String(), user.Name, user.Email, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.Duplicate("User with email '%s' already exists", req.Email)
		}
		return nil, apperrors.Store(err)
	}

	return &user, nil
}
