package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Loader produces a complete dataset from its source.
type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// TableSource returns a raw header-plus-rows table, the shape shared by
// spreadsheet files, Google Sheets ranges and CSV objects.
type TableSource interface {
	Name() string
	ReadTable(ctx context.Context) ([][]string, error)
}

type tableLoader struct {
	source TableSource
	now    func() time.Time
}

func NewTableLoader(source TableSource) Loader {
	return &tableLoader{source: source, now: time.Now}
}

func (l *tableLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	table, err := l.source.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.source.Name(), err)
	}

	rows, err := ParseTable(table)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.source.Name(), err)
	}

	logger.Debug().
		Str("source", l.source.Name()).
		Int("records", len(rows)).
		Msg("dataset loaded")

	return adapters.MapStoreEmissionRowsToDataset(rows, l.source.Name(), l.now().UTC()), nil
}

type fileSource struct {
	path   string
	sheet  string
	format Format
}

// NewFileSource reads a local .xlsx or .csv file on every ReadTable call.
func NewFileSource(path, sheet string) (TableSource, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{path: path, sheet: sheet, format: format}, nil
}

func (f *fileSource) Name() string {
	return "file:" + f.path
}

func (f *fileSource) ReadTable(_ context.Context) ([][]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer file.Close()

	return ReadTable(file, f.format, f.sheet)
}
