package database

import (
	"context"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/repositories"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// MedicalRecordAdapter implements MedicalRecordRepository
type MedicalRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicalRecordAdapter creates a new medical record adapter
func NewMedicalRecordAdapter(client *postgres.Client) repositories.MedicalRecordRepository {
	return &MedicalRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByPatient retrieves all records for a patient, newest first. The
// ordering backs the last-write-wins grouping downstream.
func (a *MedicalRecordAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.MedicalRecord, error) {
	query, args, err := a.db.From("medical_records").
		Select("id", "patient_id", "record_type", "payload", "created_at", "created_by").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build medical records query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query medical records", err)
	}
	defer rows.Close()

	var records []*entities.MedicalRecord
	for rows.Next() {
		record := &entities.MedicalRecord{}
		var payload []byte
		if err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.Type,
			&payload,
			&record.CreatedAt,
			&record.CreatedBy,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan medical record", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &record.Payload); err != nil {
				return nil, apperrors.NewInternalError("failed to decode record payload", err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate medical records", err)
	}

	return records, nil
}
