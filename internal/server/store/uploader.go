package store

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/planfold/planfold/internal/server/config"
)

// Indirections for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

// BackupUploader copies backup snapshots to an S3-compatible bucket (MinIO
// in development). The local snapshot stays authoritative; upload failures
// are reported to the caller but never remove the local file.
type BackupUploader struct {
	config *sc.Config
}

// NewBackupUploader constructs an uploader from server config. Call only
// when cfg.OffsiteBackupEnabled() is true.
func NewBackupUploader(cfg *sc.Config) *BackupUploader {
	return &BackupUploader{config: cfg}
}

func (u *BackupUploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3RootUser,
			u.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return client, nil
}

// Upload stores the snapshot body under its data-directory-relative name.
func (u *BackupUploader) Upload(ctx context.Context, relPath string, body io.Reader) error {
	client, err := u.getClient(ctx)
	if err != nil {
		return fmt.Errorf("backup upload: configure client: %w", err)
	}

	bucket := u.config.S3Bucket
	key := filepath.ToSlash(relPath)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("backup upload %s: %w", key, err)
	}
	return nil
}
