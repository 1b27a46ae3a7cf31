package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/technologies/domain"
)

const uniqueViolation = "23505"

// TechnologyRepository provides persistence operations for technologies.
type TechnologyRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *TechnologyRepository {
	return &TechnologyRepository{pool: pool}
}

// List returns all technologies ordered by name ascending.
func (r *TechnologyRepository) List(ctx context.Context) ([]domain.Technology, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM technologies ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]domain.Technology, 0, 16)
	for rows.Next() {
		var (
			idStr string
			t     domain.Technology
		)
		if err := rows.Scan(&idStr, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, apperrors.Store(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Internal("invalid technology id read from store: %v", err)
		}
		t.ID = id
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

// Create inserts a new technology. The name pre-check only provides a
// friendlier error in the common case; the unique constraint on name is the
// real enforcement and its violation maps to the same duplicate error.
func (r *TechnologyRepository) Create(ctx context.Context, req domain.CreateTechnologyRequest) (*domain.Technology, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM technologies WHERE name = $1`, req.Name).Scan(&one)
	if err == nil {
		return nil, apperrors.Duplicate("Technology with name '%s' already exists", req.Name)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Store(err)
	}

	tech := domain.New(req)

	_, err = r.pool.Exec(ctx,
		`INSERT INTO technologies (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		tech.ID.String(), tech.Name, tech.Description, tech.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.Duplicate("Technology with name '%s' already exists", req.Name)
		}
		return nil, apperrors.Store(err)
	}

	return &tech, nil
}
