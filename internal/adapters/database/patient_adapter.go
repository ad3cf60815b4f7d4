package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/repositories"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// PatientAdapter implements PatientRepository
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.From("patients").
		Select("id", "date_of_birth", "sex", "ever_married", "doctor_id", "user_id", "created_at", "updated_at").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patient query", err)
	}

	patient := &entities.Patient{}
	var dateOfBirth, doctorID, userID sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&dateOfBirth,
		&patient.Sex,
		&patient.EverMarried,
		&doctorID,
		&userID,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	patient.DateOfBirth = dateOfBirth.String
	patient.DoctorID = doctorID.String
	patient.UserID = userID.String
	return patient, nil
}
