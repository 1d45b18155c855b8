package workflow

import (
	"context"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

// Runner periodically reloads the dataset and swaps it into the snapshot.
// A failed reload leaves the current snapshot in place.
type Runner struct {
	loader   dataset.Loader
	snapshot *emissions.Snapshot
	done     chan struct{}
	progress chan RunnerProgress
	config   RunnerConfig
}

type RunnerConfig struct {
	Interval time.Duration
}

type RunnerProgress struct {
	Records  int
	Source   string
	LoadedAt time.Time
}

func NewRunner(loader dataset.Loader, snapshot *emissions.Snapshot, config RunnerConfig) *Runner {
	return &Runner{
		loader:   loader,
		snapshot: snapshot,
		done:     make(chan struct{}),
		progress: make(chan RunnerProgress, 100),
		config:   config,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports every successful reload. Values are dropped when nobody
// drains the channel.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer close(r.progress)

	logger := zerolog.Ctx(ctx).With().Str("component", "reload").Logger()
	if r.config.Interval <= 0 {
		logger.Info().Msg("dataset reload disabled")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("dataset reload stopped")
			return
		case <-ticker.C:
			r.reload(ctx, logger)
		}
	}
}

func (r *Runner) reload(ctx context.Context, logger zerolog.Logger) {
	ds, err := r.loader.Load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error().Err(err).Msg("failed to reload dataset, keeping previous snapshot")
		}
		return
	}

	prev := r.snapshot.Swap(ds)
	logger.Info().
		Int("records", ds.Len()).
		Int("previous_records", prev.Len()).
		Str("source", ds.Source).
		Msg("dataset reloaded")

	select {
	case r.progress <- RunnerProgress{Records: ds.Len(), Source: ds.Source, LoadedAt: ds.LoadedAt}:
	default:
	}
}
