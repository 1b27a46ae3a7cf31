package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdomain "github.com/devcatalog/projects-api/internal/users/domain"
)

func strPtr(s string) *string { return &s }

func timePtr(tm time.Time) *time.Time { return &tm }

func baseRow() relationRow {
	return relationRow{
		ProjectID:     uuid.NewString(),
		Name:          "Catalog",
		Description:   "Service catalog",
		RepositoryURL: "https://example.com/catalog",
		Language:      "Go",
		Rating:        floatPtr(4.0),
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func withTech(row relationRow, id, name string) relationRow {
	row.TechID = strPtr(id)
	row.TechName = strPtr(name)
	row.TechCreatedAt = timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return row
}

func withUser(row relationRow, id, name, role string) relationRow {
	row.UserID = strPtr(id)
	row.UserName = strPtr(name)
	row.UserEmail = strPtr(name + "@example.com")
	row.UserCreatedAt = timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	row.Role = strPtr(role)
	return row
}

func TestCollapseRelationsNoAssociations(t *testing.T) {
	row := baseRow()

	result, err := collapseRelations([]relationRow{row})
	require.NoError(t, err)

	assert.Equal(t, row.ProjectID, result.ID.String())
	assert.Equal(t, "Catalog", result.Name)
	require.NotNil(t, result.Rating)
	assert.Equal(t, 4.0, *result.Rating)
	assert.Empty(t, result.Technologies)
	assert.Empty(t, result.Users)
	assert.NotNil(t, result.Technologies)
	assert.NotNil(t, result.Users)
}

func TestCollapseRelationsDeduplicatesCrossProduct(t *testing.T) {
	base := baseRow()
	techGo := uuid.NewString()
	techRust := uuid.NewString()
	userAna := uuid.NewString()
	userBob := uuid.NewString()

	// two technologies times two users produces four join rows
	rows := []relationRow{
		withUser(withTech(base, techRust, "Rust"), userBob, "Bob", "contributor"),
		withUser(withTech(base, techRust, "Rust"), userAna, "Ana", "owner"),
		withUser(withTech(base, techGo, "Go"), userBob, "Bob", "contributor"),
		withUser(withTech(base, techGo, "Go"), userAna, "Ana", "owner"),
	}

	result, err := collapseRelations(rows)
	require.NoError(t, err)

	require.Len(t, result.Technologies, 2)
	assert.Equal(t, "Go", result.Technologies[0].Name)
	assert.Equal(t, "Rust", result.Technologies[1].Name)

	require.Len(t, result.Users, 2)
	assert.Equal(t, "Ana", result.Users[0].Name)
	assert.Equal(t, userdomain.RoleOwner, result.Users[0].Role)
	assert.Equal(t, "Bob", result.Users[1].Name)
	assert.Equal(t, userdomain.RoleContributor, result.Users[1].Role)
}

func TestCollapseRelationsDropsUnknownRole(t *testing.T) {
	base := baseRow()
	rows := []relationRow{
		withUser(base, uuid.NewString(), "Ana", "owner"),
		withUser(base, uuid.NewString(), "Mallory", "superadmin"),
	}

	result, err := collapseRelations(rows)
	require.NoError(t, err)

	require.Len(t, result.Users, 1)
	assert.Equal(t, "Ana", result.Users[0].Name)
}

func TestCollapseRelationsPartialAssociationRow(t *testing.T) {
	base := baseRow()
	rows := []relationRow{
		withTech(base, uuid.NewString(), "Go"),
		withUser(base, uuid.NewString(), "Ana", "viewer"),
	}

	result, err := collapseRelations(rows)
	require.NoError(t, err)

	require.Len(t, result.Technologies, 1)
	require.Len(t, result.Users, 1)
	assert.Equal(t, userdomain.RoleViewer, result.Users[0].Role)
}

func TestCollapseRelationsBadProjectID(t *testing.T) {
	row := baseRow()
	row.ProjectID = "garbage"

	_, err := collapseRelations([]relationRow{row})
	assert.Error(t, err)
}
