package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_LedgerConfig(t *testing.T) {
	os.Setenv("LEDGER_BASE_URL", "https://ledger.example.com")
	os.Setenv("LEDGER_API_USERNAME", "svc-user")
	os.Setenv("LEDGER_API_PASSWORD", "secret")
	defer func() {
		os.Unsetenv("LEDGER_BASE_URL")
		os.Unsetenv("LEDGER_API_USERNAME")
		os.Unsetenv("LEDGER_API_PASSWORD")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://ledger.example.com", cfg.Ledger.BaseURL)
	assert.Equal(t, "svc-user", cfg.Ledger.Username)
	assert.Equal(t, "secret", cfg.Ledger.Password)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DB_NAME")
	os.Unsetenv("RECORD_FEED_CHANNEL")
	os.Unsetenv("SMTP_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "medical_records", cfg.Database.Database)
	assert.Equal(t, "medical_records.inserted", cfg.Worker.FeedChannel)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "pw",
		Database: "medical_records",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=pw dbname=medical_records sslmode=require",
		cfg.DatabaseDSN(),
	)
}
