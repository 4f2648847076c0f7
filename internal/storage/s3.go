package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores a file in an object-storage bucket and returns the URL it
// can be retrieved from.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// S3Uploader uploads to an S3-compatible bucket (AWS S3 or MinIO).
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// Ensure S3Uploader implements Uploader
var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader from static credentials and an optional
// custom endpoint.
func NewS3Uploader(ctx context.Context, region, endpoint, publicURL, bucket, accessKey, secretKey string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// Upload puts the object and returns its public download URL.
func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key), nil
}
