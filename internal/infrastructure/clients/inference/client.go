package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zatekoja/medicalriskpipeline/pkg/config"
	apperrors "github.com/zatekoja/medicalriskpipeline/pkg/errors"
)

// Client calls the model-serving endpoint hosting the trained stroke
// classifier. The service owns imputation and categorical encoding; this
// client only moves the raw feature row and the encoded vector across the
// wire. Each call is independent and stateless.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new inference client
func NewClient(cfg *config.InferenceConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transformRequest struct {
	Row map[string]any `json:"row"`
}

type transformResponse struct {
	Vector []float64 `json:"vector"`
}

type predictRequest struct {
	Vector []float64 `json:"vector"`
}

type predictResponse struct {
	Label int `json:"label"`
}

// Transform encodes one raw feature row into a model-ready vector
func (c *Client) Transform(ctx context.Context, row map[string]any) ([]float64, error) {
	var out transformResponse
	if err := c.post(ctx, "/transform", transformRequest{Row: row}, &out); err != nil {
		return nil, apperrors.NewExternalError("transform call failed", err)
	}
	return out.Vector, nil
}

// Predict returns the binary risk label for one encoded vector
func (c *Client) Predict(ctx context.Context, vector []float64) (bool, error) {
	var out predictResponse
	if err := c.post(ctx, "/predict", predictRequest{Vector: vector}, &out); err != nil {
		return false, apperrors.NewExternalError("predict call failed", err)
	}
	return out.Label == 1, nil
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("endpoint %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
