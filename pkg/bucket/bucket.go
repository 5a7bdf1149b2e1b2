// Package bucket holds a thin S3 client used for run logs and exports.
package bucket

import (
	"context"
	"fmt"
	"io"

	appConfig "uchelper/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client wraps the S3 client with the bucket it writes to.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient creates the S3 client from the bucket configuration.
func NewClient(cfg appConfig.BucketConfig) *Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &Client{
		s3:     s3Client,
		bucket: cfg.Name,
	}
}

// Upload puts a single object into the bucket.
func (c *Client) Upload(ctx context.Context, objectKey string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %v", objectKey, err)
	}

	return nil
}
