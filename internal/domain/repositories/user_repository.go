package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	// ListBySchoolAndRole returns the school's users holding role, ordered by name
	ListBySchoolAndRole(ctx context.Context, schoolID uuid.UUID, role entities.Role) ([]*entities.User, error)
}

// SchoolRepository defines the interface for school data access
type SchoolRepository interface {
	Create(ctx context.Context, school *entities.School) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.School, error)
}
