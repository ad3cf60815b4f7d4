package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/repositories"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// HealthNotificationAdapter implements HealthNotificationRepository
type HealthNotificationAdapter struct {
	db *sqlx.DB
}

// NewHealthNotificationAdapter creates a new health notification adapter
func NewHealthNotificationAdapter(client *postgres.Client) repositories.HealthNotificationRepository {
	return &HealthNotificationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create persists a health notification audit entry
func (a *HealthNotificationAdapter) Create(ctx context.Context, notification *entities.HealthNotification) error {
	query := `
		INSERT INTO health_notifications (id, title, text, disease, patient_id, created_at)
		VALUES (:id, :title, :text, :disease, :patient_id, :created_at)
	`

	if _, err := a.db.NamedExecContext(ctx, query, notification); err != nil {
		return apperrors.NewInternalError("failed to create health notification", err)
	}
	return nil
}
