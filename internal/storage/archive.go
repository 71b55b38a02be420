// Package storage archives generated documents to an R2-compatible object
// store so invoices survive the server's local disk.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kivi-backend/internal/config"
)

type Archiver struct {
	client *s3.Client
	bucket string
}

// NewArchiver builds an archiver from config. Returns nil when archiving is
// disabled or misconfigured; callers treat a nil archiver as a no-op.
func NewArchiver(cfg *config.Config) *Archiver {
	if !cfg.Archive.Enabled {
		return nil
	}
	if cfg.Archive.AccessKey == "" || cfg.Archive.SecretKey == "" || cfg.Archive.Bucket == "" {
		log.Printf("[Archive] Archive endpoint set but credentials incomplete, archiving disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure client: %v", err)
		return nil
	}

	endpoint := cfg.Archive.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &Archiver{client: client, bucket: cfg.Archive.Bucket}
}

// Store uploads a document under key. Safe to call on a nil archiver.
func (a *Archiver) Store(ctx context.Context, key string, body []byte, contentType string) error {
	if a == nil {
		return nil
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return nil
}
