package repositories

import (
	"context"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// MedicalRecordRepository defines the interface for medical record reads
type MedicalRecordRepository interface {
	// ListByPatient retrieves all records for a patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error)
}
