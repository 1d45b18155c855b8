package workflow

import (
	"context"
	"fmt"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/de-tools/carbon-atlas/pkg/store/duckdb/emission"
	"github.com/rs/zerolog"
)

// Import loads the configured source and replaces the embedded copy of the
// dataset. It returns the stats of the stored table after the import.
func Import(ctx context.Context, loader dataset.Loader, emissionStore emission.Store) (*store.DatasetStats, error) {
	logger := zerolog.Ctx(ctx)

	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	rows := make([]store.EmissionRow, 0, ds.Len())
	for _, record := range ds.Records {
		rows = append(rows, adapters.MapDomainEmissionToStoreRow(record))
	}

	if err := emissionStore.Replace(ctx, ds.Source, rows); err != nil {
		return nil, fmt.Errorf("store dataset: %w", err)
	}

	stats, err := emissionStore.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", ds.Source).
		Int64("records", stats.RecordsCount).
		Msg("dataset imported")
	return stats, nil
}
