package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/databricks/databricks-sdk-go/config"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const defaultHttpPath = "/sql/1.0/warehouses/warehouse"

// Registry exposes the profiles of a .databrickscfg file.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetConfig(ctx context.Context, profile string) (*config.Config, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, domain.ConfigProfile{
				Name: section.Name(),
				Host: section.Key("host").String(),
			})
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*config.Config, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	host := section.Key("host").String()
	token := section.Key("token").String()
	if host == "" || token == "" {
		return nil, fmt.Errorf("profile %s requires host and token", profile)
	}

	return &config.Config{
		Host:  host,
		Token: token,
	}, nil
}

// DatabricksDSN builds a databricks-sql-go DSN for a SQL warehouse.
func DatabricksDSN(cfg *config.Config, httpPath string) string {
	if httpPath == "" {
		httpPath = defaultHttpPath
	}
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.Host, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")
	return fmt.Sprintf("token:%s@%s%s", cfg.Token, host, httpPath)
}
