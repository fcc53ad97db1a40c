package cloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

// PublishAPI is the part of the SNS client used for alert notifications.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient wraps AWS SNS client for notification operations
type SNSClient struct {
	svc      PublishAPI
	topicArn string
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// SendAlert sends an alert notification via SNS
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Msg("alert sent")
	return nil
}

// SendBatchAlerts sends multiple critical usage alerts in one notification.
func (c *SNSClient) SendBatchAlerts(ctx context.Context, alerts []string) error {
	if len(alerts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Resource Usage: %d Critical Alerts", len(alerts))
	var message strings.Builder
	message.WriteString("Critical resource usage detected:\n\n")
	for i, alert := range alerts {
		fmt.Fprintf(&message, "%d. %s\n", i+1, alert)
	}

	return c.SendAlert(ctx, subject, message.String())
}

// LogNotifier reports alerts through the logger when cloud services are disabled.
type LogNotifier struct{}

func (LogNotifier) SendBatchAlerts(_ context.Context, alerts []string) error {
	for _, a := range alerts {
		log.Warn().Str("alert", a).Msg("critical resource usage")
	}
	return nil
}
