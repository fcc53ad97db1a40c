package cloud

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
)

// ObjectAPI is the part of the S3 client used for report archiving.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Client archives sustainability reports in a bucket.
type S3Client struct {
	svc     ObjectAPI
	presign func(ctx context.Context, bucket, key string) (string, error)
	bucket  string
	now     func() time.Time
}

// NewS3Client creates a new S3 client instance
func NewS3Client(ctx context.Context, region, bucket string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	svc := s3.NewFromConfig(cfg)
	presignClient := s3.NewPresignClient(svc)
	return &S3Client{
		svc:    svc,
		bucket: bucket,
		now:    time.Now,
		presign: func(ctx context.Context, bucket, key string) (string, error) {
			req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}, func(opts *s3.PresignOptions) {
				opts.Expires = 1 * time.Hour // URL expires in 1 hour
			})
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
	}, nil
}

// ReportKey names an archived report: reports/<date>/<ulid>.txt.
func ReportKey(at time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())
	return fmt.Sprintf("reports/%s/%s.txt", at.UTC().Format("2006-01-02"), id.String())
}

// UploadReport stores a text report and returns its key and a presigned download URL.
func (c *S3Client) UploadReport(ctx context.Context, data []byte) (string, string, error) {
	now := c.now()
	key := ReportKey(now)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain; charset=utf-8"),
		Metadata: map[string]string{
			"uploaded-at": now.Format(time.RFC3339),
		},
	}

	if _, err := c.svc.PutObject(ctx, input); err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if c.presign == nil {
		return key, "", nil
	}
	url, err := c.presign(ctx, c.bucket, key)
	if err != nil {
		return key, "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return key, url, nil
}
