package terminal

import (
	"context"
	"errors"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

const defaultConfigPath = "carbon-atlas.yaml"

// configSession resolves the dataset from the --config file, falling back to
// defaults and CARBON_* variables when the default file does not exist.
type configSession struct {
	cli *CLI
	cfg *config.Config
}

func (s *configSession) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}

	path := s.cli.configPath
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	s.cfg = cfg
	return cfg, nil
}

func (s *configSession) Loader(ctx context.Context) (dataset.Loader, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return s.cli.registry.Create(ctx, cfg.Source)
}

func (s *configSession) Service(ctx context.Context) (emissions.QueryService, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}

	loader, err := s.cli.registry.Create(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	return emissions.NewService(emissions.NewSnapshot(ds), cfg.Budget.Domain()), nil
}
