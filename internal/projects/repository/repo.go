package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/projects/domain"
	userdomain "github.com/devcatalog/projects-api/internal/users/domain"
)

// ProjectRepository provides persistence operations for projects and their
// technology/user associations.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// List returns one page of projects matching the query filters plus the
// total number of matches. COUNT and SELECT share the same predicates.
func (r *ProjectRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Project, int64, error) {
	st := buildListStatements(q)

	var total int64
	if err := r.pool.QueryRow(ctx, st.countSQL, st.countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	rows, err := r.pool.Query(ctx, st.selectSQL, st.selectArgs...)
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, q.EffectivePageSize())
	for rows.Next() {
		var (
			idStr string
			p     domain.Project
		)
		if err := rows.Scan(&idStr, &p.Name, &p.Description, &p.RepositoryURL, &p.Language, &p.Rating, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, apperrors.Store(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, 0, apperrors.Internal("invalid project id read from store: %v", err)
		}
		p.ID = id
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	return out, total, nil
}

const relationQuery = `
SELECT
    p.id, p.name, p.description, p.repository_url, p.language, p.rating, p.created_at, p.updated_at,
    t.id, t.name, t.description, t.created_at,
    u.id, u.name, u.email, u.created_at, pu.role
FROM projects p
LEFT JOIN project_technologies pt ON p.id = pt.project_id
LEFT JOIN technologies t ON pt.technology_id = t.id
LEFT JOIN project_users pu ON p.id = pu.project_id
LEFT JOIN users u ON pu.user_id = u.id
WHERE p.id = $1
ORDER BY t.name ASC, u.name ASC;
`

// GetWithRelations fetches one project together with its technologies and
// users in a single LEFT-JOIN query and collapses the flat result.
func (r *ProjectRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.ProjectWithRelations, error) {
	rows, err := r.pool.Query(ctx, relationQuery, id.String())
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	joined := make([]relationRow, 0, 8)
	for rows.Next() {
		var row relationRow
		if err := rows.Scan(
			&row.ProjectID, &row.Name, &row.Description, &row.RepositoryURL, &row.Language, &row.Rating, &row.CreatedAt, &row.UpdatedAt,
			&row.TechID, &row.TechName, &row.TechDescription, &row.TechCreatedAt,
			&row.UserID, &row.UserName, &row.UserEmail, &row.UserCreatedAt, &row.Role,
		); err != nil {
			return nil, apperrors.Store(err)
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}

	if len(joined) == 0 {
		return nil, apperrors.NotFound("Project", id.String())
	}

	return collapseRelations(joined)
}

// Create validates that every referenced technology and user exists, then
// inserts the project row and its association rows in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, req domain.CreateProjectRequest) (*domain.ProjectWithRelations, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkReferences(ctx, tx, req.TechnologyIDs, req.UserIDs); err != nil {
		return nil, err
	}

	project := domain.NewProject(req)

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (id, name, description, repository_url, language, rating, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		project.ID.String(), project.Name, project.Description, project.RepositoryURL,
		project.Language, project.Rating, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if req.TechnologyIDs != nil {
		if err := insertTechnologyLinks(ctx, tx, project.ID, *req.TechnologyIDs); err != nil {
			return nil, err
		}
	}
	if req.UserIDs != nil {
		if err := insertUserLinks(ctx, tx, project.ID, *req.UserIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Store(err)
	}

	return r.GetWithRelations(ctx, project.ID)
}

// Update applies the present fields to the project and, for each supplied id
// list, replaces the existing associations wholesale. Everything runs in one
// transaction; updated_at is stamped even when no field changed.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateProjectRequest) (*domain.ProjectWithRelations, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer tx.Rollback(ctx)

	if err := r.checkReferences(ctx, tx, req.TechnologyIDs, req.UserIDs); err != nil {
		return nil, err
	}

	var (
		idStr   string
		project domain.Project
	)
	err = tx.QueryRow(ctx,
		`SELECT id, name, description, repository_url, language, rating, created_at, updated_at
		 FROM projects WHERE id = $1 FOR UPDATE`,
		id.String(),
	).Scan(&idStr, &project.Name, &project.Description, &project.RepositoryURL,
		&project.Language, &project.Rating, &project.CreatedAt, &project.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Project", id.String())
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	project.ID = id

	req.Apply(&project)

	_, err = tx.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, repository_url = $3, language = $4, rating = $5, updated_at = $6
		 WHERE id = $7`,
		project.Name, project.Description, project.RepositoryURL, project.Language,
		project.Rating, project.UpdatedAt, id.String(),
	)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if req.TechnologyIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM project_technologies WHERE project_id = $1`, id.String()); err != nil {
			return nil, apperrors.Store(err)
		}
		if err := insertTechnologyLinks(ctx, tx, id, *req.TechnologyIDs); err != nil {
			return nil, err
		}
	}

	if req.UserIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM project_users WHERE project_id = $1`, id.String()); err != nil {
			return nil, apperrors.Store(err)
		}
		if err := insertUserLinks(ctx, tx, id, *req.UserIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Store(err)
	}

	return r.GetWithRelations(ctx, id)
}

// Delete removes the project row; association rows go with it via the
// ON DELETE CASCADE constraints.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id.String())
	if err != nil {
		return apperrors.Store(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Project", id.String())
	}
	return nil
}

// checkReferences probes every supplied technology id, then every user id.
// The first missing id aborts with a not-found error naming it.
func (r *ProjectRepository) checkReferences(ctx context.Context, tx pgx.Tx, techIDs, userIDs *[]uuid.UUID) error {
	if techIDs != nil {
		for _, techID := range *techIDs {
			if err := refExists(ctx, tx, `SELECT 1 FROM technologies WHERE id = $1`, "Technology", techID); err != nil {
				return err
			}
		}
	}
	if userIDs != nil {
		for _, userID := range *userIDs {
			if err := refExists(ctx, tx, `SELECT 1 FROM users WHERE id = $1`, "User", userID); err != nil {
				return err
			}
		}
	}
	return nil
}

func refExists(ctx context.Context, tx pgx.Tx, query, resource string, id uuid.UUID) error {
	var one int
	err := tx.QueryRow(ctx, query, id.String()).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(resource, id.String())
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func insertTechnologyLinks(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, techIDs []uuid.UUID) error {
	now := time.Now().UTC()
	for _, techID := range techIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_technologies (project_id, technology_id, created_at) VALUES ($1, $2, $3)`,
			projectID.String(), techID.String(), now,
		)
		if err != nil {
			return apperrors.Store(err)
		}
	}
	return nil
}

func insertUserLinks(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, userIDs []uuid.UUID) error {
	now := time.Now().UTC()
	for idx, userID := range userIDs {
		role := userdomain.RoleForPosition(idx)
		_, err := tx.Exec(ctx,
			`INSERT INTO project_users (project_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`,
			projectID.String(), userID.String(), string(role), now,
		)
		if err != nil {
			return apperrors.Store(err)
		}
	}
	return nil
}
