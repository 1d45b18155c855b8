package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/de-tools/carbon-atlas/pkg/store/objectstore"
	"github.com/de-tools/carbon-atlas/pkg/store/sheets"
	sqlsource "github.com/de-tools/carbon-atlas/pkg/store/sql"
)

// LoaderFactory builds a dataset loader from the source section of the config.
type LoaderFactory func(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error)

// Registry manages dataset loader factories per source kind
type Registry interface {
	// Register adds a new source kind
	Register(kind domain.SourceKind, factory LoaderFactory) error
	// Create instantiates the loader configured by cfg.Kind
	Create(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error)
	// ListKinds returns the registered kinds in sorted order
	ListKinds() []domain.SourceKind
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceKind]LoaderFactory
}

func NewRegistry(factories map[domain.SourceKind]LoaderFactory) Registry {
	r := &registry{
		factories: make(map[domain.SourceKind]LoaderFactory, len(factories)),
	}
	for kind, factory := range factories {
		r.factories[kind] = factory
	}
	return r
}

// DefaultRegistry knows every built-in source kind.
func DefaultRegistry() Registry {
	return NewRegistry(map[domain.SourceKind]LoaderFactory{
		domain.SourceKindFile:   FileLoaderFactory,
		domain.SourceKindSheets: SheetsLoaderFactory,
		domain.SourceKindS3:     S3LoaderFactory,
		domain.SourceKindSQL:    SQLLoaderFactory,
	})
}

func (r *registry) Register(kind domain.SourceKind, factory LoaderFactory) error {
	if kind == "" {
		return fmt.Errorf("source kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source kind %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source kind %q is not registered", cfg.Kind)
	}

	return factory(ctx, cfg)
}

func (r *registry) ListKinds() []domain.SourceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.SourceKind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

func FileLoaderFactory(_ context.Context, cfg config.SourceConfig) (dataset.Loader, error) {
	src, err := dataset.NewFileSource(cfg.Path, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	return dataset.NewTableLoader(src), nil
}

func SheetsLoaderFactory(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error) {
	client, err := sheets.NewClient(ctx, cfg.Sheets)
	if err != nil {
		return nil, err
	}
	return dataset.NewTableLoader(client), nil
}

func S3LoaderFactory(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error) {
	src, err := objectstore.NewSource(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	return dataset.NewTableLoader(src), nil
}

func SQLLoaderFactory(ctx context.Context, cfg config.SourceConfig) (dataset.Loader, error) {
	dsn, err := sqlDSN(ctx, cfg.SQL)
	if err != nil {
		return nil, err
	}

	db, err := sqlsource.Open(cfg.SQL.Driver, dsn)
	if err != nil {
		return nil, err
	}

	return sqlsource.NewLoader(db, cfg.SQL.Table, "sql:"+cfg.SQL.Driver)
}

func sqlDSN(ctx context.Context, cfg config.SQLConfig) (string, error) {
	if cfg.DSN != "" || cfg.Driver != "databricks" || cfg.Profile == "" {
		return cfg.DSN, nil
	}

	path := cfg.DatabricksCfg
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".databrickscfg")
	}

	profiles, err := config.NewRegistry(path)
	if err != nil {
		return "", fmt.Errorf("failed to create config registry: %w", err)
	}
	profile, err := profiles.GetConfig(ctx, cfg.Profile)
	if err != nil {
		return "", err
	}
	return config.DatabricksDSN(profile, cfg.HTTPPath), nil
}
