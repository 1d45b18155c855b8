package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/store/objectstore"
	"github.com/de-tools/carbon-atlas/pkg/store/sheets"
	"github.com/spf13/viper"
)

const envPrefix = "CARBON"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Source SourceConfig `mapstructure:"source"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Budget BudgetConfig `mapstructure:"budget"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SourceConfig struct {
	Kind           domain.SourceKind  `mapstructure:"kind"`
	Path           string             `mapstructure:"path"`
	Sheet          string             `mapstructure:"sheet"`
	ReloadInterval time.Duration      `mapstructure:"reload_interval"`
	Sheets         sheets.Config      `mapstructure:"sheets"`
	S3             objectstore.Config `mapstructure:"s3"`
	SQL            SQLConfig          `mapstructure:"sql"`
}

type SQLConfig struct {
	Driver        string `mapstructure:"driver"`
	DSN           string `mapstructure:"dsn"`
	Table         string `mapstructure:"table"`
	Profile       string `mapstructure:"profile"`
	DatabricksCfg string `mapstructure:"databrickscfg"`
	HTTPPath      string `mapstructure:"http_path"`
}

type AuthConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	DefaultPassword string        `mapstructure:"default_password"`
	Secret          string        `mapstructure:"secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
}

type BudgetConfig struct {
	Limit      float64 `mapstructure:"limit"`
	WarnAt     float64 `mapstructure:"warn_at"`
	CriticalAt float64 `mapstructure:"critical_at"`
}

func (b BudgetConfig) Domain() domain.Budget {
	return domain.Budget{Limit: b.Limit, WarnAt: b.WarnAt, CriticalAt: b.CriticalAt}
}

var defaults = map[string]any{
	"server.host":                    "127.0.0.1",
	"server.port":                    8000,
	"server.shutdown_timeout":        "10s",
	"log.level":                      "info",
	"source.kind":                    string(domain.SourceKindFile),
	"source.path":                    "",
	"source.sheet":                   "",
	"source.reload_interval":         "0s",
	"source.sheets.spreadsheet_id":   "",
	"source.sheets.range":            "",
	"source.sheets.credentials_file": "",
	"source.sheets.credentials_json": "",
	"source.s3.bucket":               "",
	"source.s3.key":                  "",
	"source.s3.region":               "",
	"source.s3.profile":              "",
	"source.s3.sheet":                "",
	"source.sql.driver":              "duckdb",
	"source.sql.dsn":                 "",
	"source.sql.table":               "emission_records",
	"source.sql.profile":             "",
	"source.sql.databrickscfg":       "",
	"source.sql.http_path":           "",
	"auth.enabled":                   false,
	"auth.credentials_file":          "",
	"auth.default_password":          "",
	"auth.secret":                    "",
	"auth.token_ttl":                 "12h",
	"budget.limit":                   1000.0,
	"budget.warn_at":                 500.0,
	"budget.critical_at":             800.0,
}

// Load reads the YAML file at path (skipped when empty) and applies CARBON_*
// environment overrides, e.g. CARBON_SOURCE_PATH for source.path.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server.port %d: must be between 1 and 65535", c.Server.Port))
	}

	switch c.Source.Kind {
	case domain.SourceKindFile:
		if c.Source.Path == "" {
			problems = append(problems, "source.path is required for the file source")
		}
	case domain.SourceKindSheets:
		if c.Source.Sheets.SpreadsheetID == "" {
			problems = append(problems, "source.sheets.spreadsheet_id is required for the sheets source")
		}
	case domain.SourceKindS3:
		if c.Source.S3.Bucket == "" || c.Source.S3.Key == "" {
			problems = append(problems, "source.s3.bucket and source.s3.key are required for the s3 source")
		}
	case domain.SourceKindSQL:
		if c.Source.SQL.DSN == "" && !(c.Source.SQL.Driver == "databricks" && c.Source.SQL.Profile != "") {
			problems = append(problems, "source.sql.dsn is required (or source.sql.profile with the databricks driver)")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid source.kind %q: must be one of file, sheets, s3, sql", c.Source.Kind))
	}

	if c.Source.ReloadInterval < 0 {
		problems = append(problems, "source.reload_interval must not be negative")
	}

	if c.Auth.Enabled {
		if c.Auth.Secret == "" {
			problems = append(problems, "auth.secret is required when auth is enabled")
		}
		if c.Auth.CredentialsFile == "" && c.Auth.DefaultPassword == "" {
			problems = append(problems, "auth.credentials_file or auth.default_password is required when auth is enabled")
		}
		if c.Auth.TokenTTL <= 0 {
			problems = append(problems, "auth.token_ttl must be positive")
		}
	}

	if c.Budget.WarnAt > c.Budget.CriticalAt {
		problems = append(problems, "budget.warn_at must not exceed budget.critical_at")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
