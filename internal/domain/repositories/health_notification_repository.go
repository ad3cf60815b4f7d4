package repositories

import (
	"context"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// HealthNotificationRepository defines the interface for notification audit writes
type HealthNotificationRepository interface {
	// Create persists a health notification audit entry
	Create(ctx context.Context, notification *entities.HealthNotification) error
}
