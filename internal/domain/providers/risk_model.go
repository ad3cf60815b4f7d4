package providers

import "context"

// RiskModel defines the interface for the trained classifier and its
// feature-encoding pipeline. Both steps are opaque to the core: imputation
// and categorical encoding happen behind Transform.
type RiskModel interface {
	// Transform encodes one raw feature row into a model-ready vector
	Transform(ctx context.Context, row map[string]any) ([]float64, error)

	// Predict returns the binary risk label for one encoded vector
	Predict(ctx context.Context, vector []float64) (bool, error)
}
