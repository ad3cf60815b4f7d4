package providers

import (
	"context"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
)

// RecordFeed defines the interface for the change feed of newly inserted
// medical records. Delivery is at-least-once and batch-grouped; the feed makes
// no ordering or dedup guarantees.
type RecordFeed interface {
	// Subscribe starts consuming batches until ctx is cancelled
	Subscribe(ctx context.Context) (<-chan *entities.RecordBatch, error)

	// Publish emits a batch to the feed (used by ingest-side producers)
	Publish(ctx context.Context, batch *entities.RecordBatch) error

	// Close shuts the feed down
	Close() error
}
