package uploader

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconfig "github.com/vik9386/backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader stores media on any S3-compatible object store (AWS S3, MinIO).
type S3Uploader struct {
	client *s3.Client
	cfg    appconfig.MediaConfig
}

func NewS3Uploader(mediaCfg appconfig.MediaConfig) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(mediaCfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			mediaCfg.AccessKey,
			mediaCfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load media storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if mediaCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(mediaCfg.Endpoint)
			// MinIO and other self-hosted stores want path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, cfg: mediaCfg}, nil
}

// objectKey spreads uploads over date-based prefixes.
func objectKey(localPath string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(filepath.Ext(localPath)))
}

func (u *S3Uploader) Upload(ctx context.Context, localPath string) (*Result, error) {
	if localPath == "" {
		return nil, nil
	}
	// The staged temp file is removed no matter how the upload ends.
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	key := objectKey(localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to media storage: %w", err)
	}

	return &Result{URL: u.publicURL(key), Key: key}, nil
}

func (u *S3Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
