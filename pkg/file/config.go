package file

import (
	"context"
	"fmt"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the blob storage driver.
type Config struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"local"`
	FolderPath string `env:"FOLDER_PATH" envDefault:"/tmp/files_manager"`

	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"S3_SECRET_KEY"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3Prefix         string `env:"S3_PREFIX" envDefault:"files_manager"`
	S3ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// New builds the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStorage(cfg.FolderPath)
	case DriverS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			Prefix:         cfg.S3Prefix,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
