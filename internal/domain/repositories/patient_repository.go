package repositories

import (
	"context"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// PatientRepository defines the interface for patient reads
type PatientRepository interface {
	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)
}
