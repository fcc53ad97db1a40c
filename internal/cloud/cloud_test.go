package cloud

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeObjects) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

type fakePublisher struct {
	inputs []*sns.PublishInput
}

func (f *fakePublisher) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestReportKey(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	key := ReportKey(at)
	assert.Regexp(t, regexp.MustCompile(`^reports/2026-10-18/[0-9A-HJKMNP-TV-Z]{26}\.txt$`), key)
	assert.NotEqual(t, key, ReportKey(at))
}

func TestUploadReport(t *testing.T) {
	objects := &fakeObjects{}
	c := &S3Client{
		svc:    objects,
		bucket: "reports-bucket",
		now:    func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) },
		presign: func(_ context.Context, bucket, key string) (string, error) {
			return "https://" + bucket + ".example/" + key, nil
		},
	}

	key, url, err := c.UploadReport(context.Background(), []byte("report body"))
	require.NoError(t, err)

	assert.Equal(t, "reports-bucket", aws.ToString(objects.input.Bucket))
	assert.Equal(t, key, aws.ToString(objects.input.Key))
	assert.Equal(t, "report body", string(objects.body))
	assert.Equal(t, "https://reports-bucket.example/"+key, url)
}

func TestUploadReportFailure(t *testing.T) {
	c := &S3Client{svc: &fakeObjects{err: errors.New("denied")}, bucket: "b", now: time.Now}
	_, _, err := c.UploadReport(context.Background(), []byte("x"))
	assert.ErrorContains(t, err, "failed to upload to S3")
}

func TestSendBatchAlerts(t *testing.T) {
	pub := &fakePublisher{}
	c := &SNSClient{svc: pub, topicArn: "arn:aws:sns:us-east-1:123:alerts"}

	require.NoError(t, c.SendBatchAlerts(context.Background(), nil))
	assert.Empty(t, pub.inputs)

	require.NoError(t, c.SendBatchAlerts(context.Background(), []string{"CRITICAL: Coal Power Plant usage is at 90.0%"}))
	require.Len(t, pub.inputs, 1)
	assert.Equal(t, "Resource Usage: 1 Critical Alerts", aws.ToString(pub.inputs[0].Subject))
	assert.Contains(t, aws.ToString(pub.inputs[0].Message), "1. CRITICAL: Coal Power Plant usage is at 90.0%")
}
