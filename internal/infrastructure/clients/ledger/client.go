package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/zatekoja/medicalriskpipeline/pkg/config"
)

// Client talks to the record-ledger integrity service. Validation is a
// two-step protocol: authenticate for a short-lived token, then ask the
// validation endpoint whether the tamper-evident ledger is internally
// consistent. The client is fail-closed: every failure mode reports invalid.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new ledger client
func NewClient(cfg *config.LedgerConfig) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ledger-validation",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Valid reports whether the record ledger is internally consistent. An open
// circuit breaker, missing credentials, transport error, non-success status
// or malformed response all resolve to false; absence of proof of validity is
// never treated as valid. The gate performs no retries of its own.
func (c *Client) Valid(ctx context.Context) bool {
	if c.username == "" || c.password == "" {
		log.Error().Msg("Ledger API username or password not configured")
		return false
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.validate(ctx)
	})
	if err != nil {
		log.Warn().Err(err).Msg("Ledger validation failed")
		return false
	}

	log.Info().Msg("Ledger is valid")
	return true
}

func (c *Client) validate(ctx context.Context) error {
	token, err := c.authenticate(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/blocks/validate", nil)
	if err != nil {
		return fmt.Errorf("failed to build validation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context) (string, error) {
	payload, err := json.Marshal(loginRequest{Username: c.username, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if login.AccessToken == "" {
		return "", fmt.Errorf("login response did not contain an access token")
	}
	return login.AccessToken, nil
}
