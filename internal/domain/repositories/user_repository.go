package repositories

import (
	"context"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// UserRepository defines the interface for user account reads
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)
}
