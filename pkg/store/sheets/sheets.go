package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const defaultRange = "A:D"

type Config struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

type valuesGetter func(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)

// Client reads the emission table from a Google Sheets range.
type Client struct {
	spreadsheetID string
	rng           string
	get           valuesGetter
}

var _ dataset.TableSource = (*Client)(nil)

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return newClient(cfg, func(ctx context.Context, id, rng string) ([][]interface{}, error) {
		resp, err := svc.Spreadsheets.Values.Get(id, rng).
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("SERIAL_NUMBER").
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}), nil
}

func newClient(cfg Config, get valuesGetter) *Client {
	rng := strings.TrimSpace(cfg.Range)
	if rng == "" {
		rng = defaultRange
	}
	return &Client{
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		rng:           rng,
		get:           get,
	}
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	logger := zerolog.Ctx(ctx)
	opts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsReadonlyScope)}

	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		logger.Debug().Msg("using inline sheets credentials")
		opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		logger.Debug().Str("path", cfg.CredentialsFile).Msg("using sheets credentials file")
		opts = append(opts, goption.WithCredentialsFile(cfg.CredentialsFile))
	default:
		logger.Debug().Msg("using application default credentials for sheets")
	}

	return gsheet.NewService(ctx, opts...)
}

func (c *Client) Name() string {
	return fmt.Sprintf("sheets:%s!%s", c.spreadsheetID, c.rng)
}

func (c *Client) ReadTable(ctx context.Context) ([][]string, error) {
	values, err := c.get(ctx, c.spreadsheetID, c.rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.rng, err)
	}

	table := make([][]string, 0, len(values))
	for _, row := range values {
		table = append(table, toStrings(row))
	}
	return table, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
