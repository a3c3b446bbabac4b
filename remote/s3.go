// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/danielhkuo/hydrogen-intake/export"
	"github.com/danielhkuo/hydrogen-intake/models"
)

const defaultRegion = "us-east-1"

// Config holds S3 connection parameters. Endpoint and PathStyle target
// S3-compatible servers such as MinIO.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
}

// objectAPI is the slice of the S3 client the log needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Log stores the submission log as one JSON object. Like the SQL log,
// appends are read-modify-write and only ordered within this process.
type S3Log struct {
	client objectAPI
	bucket string
	key    string
	mu     sync.Mutex
}

var _ export.Sink = (*S3Log)(nil)

// New creates an S3-backed submission log.
func New(ctx context.Context, cfg Config) (*S3Log, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Log(client, cfg.Bucket), nil
}

func newS3Log(client objectAPI, bucket string) *S3Log {
	return &S3Log{client: client, bucket: bucket, key: export.LogKey + ".json"}
}

func isMissing(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func (l *S3Log) read(ctx context.Context) ([]models.Submission, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &l.bucket, Key: &l.key})
	if err != nil {
		if isMissing(err) {
			return []models.Submission{}, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", l.key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.key, err)
	}

	subs := []models.Submission{}
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, fmt.Errorf("corrupt submission log %s: %w", l.key, err)
	}
	return subs, nil
}

func (l *S3Log) Append(ctx context.Context, snap models.FormSnapshot) (models.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	subs, err := l.read(ctx)
	if err != nil {
		return models.Submission{}, err
	}

	subs, sub := export.AppendToLog(subs, snap)

	body, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to encode submission log: %w", err)
	}

	_, err = l.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &l.bucket,
		Key:         &l.key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to put %s: %w", l.key, err)
	}
	return sub, nil
}

func (l *S3Log) List(ctx context.Context) ([]models.Submission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read(ctx)
}
