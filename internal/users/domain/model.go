package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Email string `json:"email" binding:"required,email"`
}

// New builds a User with a fresh id and creation timestamp.
func New(req CreateUserRequest) User {
	return User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
}

// Role is the part a user plays on a project.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleContributor Role = "contributor"
	RoleViewer      Role = "viewer"
)

// ParseRole validates a role string read back from the store.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleContributor, RoleViewer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid user role: %q", s)
	}
}

// RoleForPosition assigns owner to the first listed user and contributor to
// the rest; this convention is applied wholesale on every create/update that
// supplies a user list.
func RoleForPosition(idx int) Role {
	if idx == 0 {
		return RoleOwner
	}
	return RoleContributor
}

// UserWithRole is a user together with their role on a specific project.
type UserWithRole struct {
	User
	Role Role `json:"role"`
}
