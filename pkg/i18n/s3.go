package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures an S3Source. Endpoint and PathStyle support
// S3-compatible storage (MinIO, DigitalOcean Spaces, CDN origins).
type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	PathStyle bool

	// KeyPrefix is prepended to the conventional locales/{locale}.json key,
	// e.g. "assets" yields "assets/locales/en.json".
	KeyPrefix string
}

func (cfg S3Config) validate() error {
	if cfg.Bucket == "" {
		return errors.New("i18n: s3 bucket cannot be empty")
	}
	if cfg.Region == "" && cfg.Endpoint == "" {
		return errors.New("i18n: s3 region or endpoint must be set")
	}
	return nil
}

// S3Source fetches translation resources from S3-compatible object storage
// under the conventional key {prefix}/locales/{locale}.json.
type S3Source struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Source creates a Source reading locale objects from the configured bucket.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			if cfg.AccessKey != "" {
				o.Credentials = credentials.NewStaticCredentialsProvider(
					cfg.AccessKey,
					cfg.SecretKey,
					"",
				)
			}
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Source{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

func (s *S3Source) Fetch(ctx context.Context, locale string) ([]byte, error) {
	if !validLocaleCode(locale) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocaleCode, locale)
	}

	key := path.Join(s.cfg.KeyPrefix, "locales", locale+".json")

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: locale %q", ErrResourceNotFound, locale)
		}
		return nil, fmt.Errorf("i18n: fetching s3://%s/%s: %w", s.cfg.Bucket, key, err)
	}
	defer out.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(out.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("i18n: reading s3://%s/%s: %w", s.cfg.Bucket, key, err)
	}

	return data, nil
}
