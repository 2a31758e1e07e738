package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Storage implements Storage for AWS S3 and S3-compatible services
// (Cloudflare R2, MinIO). R2 endpoint format:
// https://<account_id>.r2.cloudflarestorage.com
type S3Storage struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	baseURL  string
}

// NewS3Storage creates a new S3/R2 storage instance
func NewS3Storage(cfg Config) (*S3Storage, error) {
	region := cfg.Region
	if region == "" {
		// R2 accepts "auto"
		region = "auto"
	}

	awsConfig := &aws.Config{
		Region:           aws.String(region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Storage{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		baseURL:  cfg.BaseURL,
	}, nil
}

// Save uploads an object, overwriting any existing one (upsert semantics).
func (s *S3Storage) Save(ctx context.Context, bucket, path string, reader io.Reader, contentType string) error {
	input := &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        reader,
		ContentType: aws.String(contentType),
	}

	_, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

// Get retrieves an object
func (s *S3Storage) Get(ctx context.Context, bucket, path string) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	result, err := s.client.GetObjectWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get from S3: %w", err)
	}

	return result.Body, nil
}

// Delete removes an object
func (s *S3Storage) Delete(ctx context.Context, bucket, path string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	_, err := s.client.DeleteObjectWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

// Exists checks if an object exists
func (s *S3Storage) Exists(ctx context.Context, bucket, path string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	_, err := s.client.HeadObjectWithContext(ctx, input)
	if err != nil {
		return false, nil
	}

	return true, nil
}

// GetURL returns a public URL for the object
func (s *S3Storage) GetURL(ctx context.Context, bucket, path string) (string, error) {
	baseURL := s.baseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.r2.dev", bucket)
	}
	return publicURL(baseURL, bucket, path), nil
}

// GetSignedURL returns a temporary presigned URL
func (s *S3Storage) GetSignedURL(ctx context.Context, bucket, path string, expiry time.Duration) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	req, _ := s.client.GetObjectRequest(input)
	url, err := req.Presign(expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

// GetSize returns the size of an object
func (s *S3Storage) GetSize(ctx context.Context, bucket, path string) (int64, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	result, err := s.client.HeadObjectWithContext(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to get object info: %w", err)
	}

	return aws.Int64Value(result.ContentLength), nil
}
