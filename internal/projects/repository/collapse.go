package repository

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/projects/domain"
	techdomain "github.com/devcatalog/projects-api/internal/technologies/domain"
	userdomain "github.com/devcatalog/projects-api/internal/users/domain"
)

// relationRow is one row of the LEFT-JOINed project query. Technology and
// user columns are nullable: a project without associations yields a single
// row with all of them NULL, and the cross-product of both joins duplicates
// technology/user data across rows.
type relationRow struct {
	ProjectID     string
	Name          string
	Description   string
	RepositoryURL string
	Language      string
	Rating        *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	TechID          *string
	TechName        *string
	TechDescription *string
	TechCreatedAt   *time.Time

	UserID        *string
	UserName      *string
	UserEmail     *string
	UserCreatedAt *time.Time
	Role          *string
}

// collapseRelations reconstructs one project plus deduplicated, name-sorted
// technology and user lists from the flat join result. rows must be non-empty
// and belong to a single project. Duplicate technology/user rows are
// discarded first-occurrence-wins; sorting is stable so equal names keep
// their insertion order.
func collapseRelations(rows []relationRow) (*domain.ProjectWithRelations, error) {
	first := rows[0]

	projectID, err := uuid.Parse(first.ProjectID)
	if err != nil {
		return nil, apperrors.Internal("invalid project id read from store: %v", err)
	}

	project := domain.Project{
		ID:            projectID,
		Name:          first.Name,
		Description:   first.Description,
		RepositoryURL: first.RepositoryURL,
		Language:      first.Language,
		Rating:        first.Rating,
		CreatedAt:     first.CreatedAt,
		UpdatedAt:     first.UpdatedAt,
	}

	techSeen := make(map[uuid.UUID]struct{})
	technologies := make([]techdomain.Technology, 0, len(rows))
	userSeen := make(map[uuid.UUID]struct{})
	users := make([]userdomain.UserWithRole, 0, len(rows))

	for _, row := range rows {
		if row.TechID != nil && row.TechName != nil && row.TechCreatedAt != nil {
			techID, err := uuid.Parse(*row.TechID)
			if err != nil {
				return nil, apperrors.Internal("invalid technology id read from store: %v", err)
			}
			if _, ok := techSeen[techID]; !ok {
				techSeen[techID] = struct{}{}
				technologies = append(technologies, techdomain.Technology{
					ID:          techID,
					Name:        *row.TechName,
					Description: row.TechDescription,
					CreatedAt:   *row.TechCreatedAt,
				})
			}
		}

		if row.UserID != nil && row.UserName != nil && row.UserEmail != nil && row.UserCreatedAt != nil && row.Role != nil {
			role, err := userdomain.ParseRole(*row.Role)
			if err != nil {
				// Leniency policy: a malformed role drops the user from the
				// list instead of failing the read.
				slog.Warn("dropping project user with unknown role",
					"project_id", first.ProjectID,
					"user_id", *row.UserID,
					"role", *row.Role,
				)
				continue
			}
			userID, err := uuid.Parse(*row.UserID)
			if err != nil {
				return nil, apperrors.Internal("invalid user id read from store: %v", err)
			}
			if _, ok := userSeen[userID]; !ok {
				userSeen[userID] = struct{}{}
				users = append(users, userdomain.UserWithRole{
					User: userdomain.User{
						ID:        userID,
						Name:      *row.UserName,
						Email:     *row.UserEmail,
						CreatedAt: *row.UserCreatedAt,
					},
					Role: role,
				})
			}
		}
	}

	sort.SliceStable(technologies, func(i, j int) bool {
		return technologies[i].Name < technologies[j].Name
	})
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})

	return &domain.ProjectWithRelations{
		Project:      project,
		Technologies: technologies,
		Users:        users,
	}, nil
}
