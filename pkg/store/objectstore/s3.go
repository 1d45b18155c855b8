package objectstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
)

type Config struct {
	Bucket  string `mapstructure:"bucket"`
	Key     string `mapstructure:"key"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
	Sheet   string `mapstructure:"sheet"`
}

// ObjectGetter is the subset of the S3 client used to fetch the dataset.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type objectSource struct {
	client ObjectGetter
	bucket string
	key    string
	sheet  string
	format dataset.Format
}

func NewSource(ctx context.Context, cfg Config) (dataset.TableSource, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewSourceWithClient(s3.NewFromConfig(awsCfg), cfg)
}

func NewSourceWithClient(client ObjectGetter, cfg Config) (dataset.TableSource, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3 source requires bucket and key")
	}
	format, err := dataset.FormatFromName(cfg.Key)
	if err != nil {
		return nil, err
	}
	return &objectSource{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		sheet:  cfg.Sheet,
		format: format,
	}, nil
}

func (o *objectSource) Name() string {
	return fmt.Sprintf("s3://%s/%s", o.bucket, o.key)
}

func (o *objectSource) ReadTable(ctx context.Context) ([][]string, error) {
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	return dataset.ReadTable(out.Body, o.format, o.sheet)
}
