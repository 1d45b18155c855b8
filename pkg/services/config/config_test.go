package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carbon-atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	// No indentation inside the backtick block to avoid YAML parsing errors
	path := writeConfig(t, `server:
  host: "0.0.0.0"
  port: 9000
  shutdown_timeout: 5s
log:
  level: debug
source:
  kind: s3
  reload_interval: 15m
  s3:
    bucket: emissions
    key: exports/2024.xlsx
    region: eu-west-1
auth:
  enabled: true
  credentials_file: users.ini
  secret: s3cr3t
  token_ttl: 1h
budget:
  limit: 2000
  warn_at: 1000
  critical_at: 1500`)

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, domain.SourceKindS3, cfg.Source.Kind)
	assert.Equal(t, 15*time.Minute, cfg.Source.ReloadInterval)
	assert.Equal(t, "emissions", cfg.Source.S3.Bucket)
	assert.Equal(t, "exports/2024.xlsx", cfg.Source.S3.Key)
	assert.Equal(t, "eu-west-1", cfg.Source.S3.Region)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, domain.Budget{Limit: 2000, WarnAt: 1000, CriticalAt: 1500}, cfg.Budget.Domain())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr())
	assert.Equal(t, domain.SourceKindFile, cfg.Source.Kind)
	assert.Equal(t, "duckdb", cfg.Source.SQL.Driver)
	assert.Equal(t, "emission_records", cfg.Source.SQL.Table)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, domain.Budget{Limit: 1000, WarnAt: 500, CriticalAt: 800}, cfg.Budget.Domain())
	assert.Zero(t, cfg.Source.ReloadInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARBON_SOURCE_PATH", "/data/emissions.csv")
	t.Setenv("CARBON_SERVER_PORT", "8081")
	t.Setenv("CARBON_SOURCE_SHEETS_SPREADSHEET_ID", "sheet-42")

	cfg, err := Load(writeConfig(t, "source:\n  path: ignored.xlsx\n"))
	require.NoError(t, err)

	assert.Equal(t, "/data/emissions.csv", cfg.Source.Path)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "sheet-42", cfg.Source.Sheets.SpreadsheetID)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := Load(writeConfig(t, "server: port: : bad"))
	assert.Error(t, err)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Source.Path = "emissions.xlsx"
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		expected []string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:     "bad port",
			mutate:   func(c *Config) { c.Server.Port = 70000 },
			expected: []string{"invalid server.port 70000"},
		},
		{
			name:     "unknown kind",
			mutate:   func(c *Config) { c.Source.Kind = "ftp" },
			expected: []string{`invalid source.kind "ftp"`},
		},
		{
			name:     "file without path",
			mutate:   func(c *Config) { c.Source.Path = "" },
			expected: []string{"source.path is required"},
		},
		{
			name: "databricks profile instead of dsn",
			mutate: func(c *Config) {
				c.Source.Kind = domain.SourceKindSQL
				c.Source.SQL.Driver = "databricks"
				c.Source.SQL.Profile = "prod"
			},
		},
		{
			name: "sql without dsn",
			mutate: func(c *Config) {
				c.Source.Kind = domain.SourceKindSQL
			},
			expected: []string{"source.sql.dsn is required"},
		},
		{
			name: "auth collects every problem",
			mutate: func(c *Config) {
				c.Auth.Enabled = true
				c.Auth.TokenTTL = 0
			},
			expected: []string{
				"auth.secret is required",
				"auth.credentials_file or auth.default_password is required",
				"auth.token_ttl must be positive",
			},
		},
		{
			name:     "budget thresholds",
			mutate:   func(c *Config) { c.Budget.WarnAt = 900 },
			expected: []string{"budget.warn_at must not exceed budget.critical_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.expected) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tt.expected {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}
