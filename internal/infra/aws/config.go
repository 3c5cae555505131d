package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Settings holds the AWS connection options. An empty Endpoint uses the AWS default,
// a set one targets e.g. LocalStack.
type Settings struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// LoadConfig builds an aws.Config, using static credentials when both keys are set
// and the default credential chain otherwise.
func LoadConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(settings.Region),
	}
	if settings.AccessKey != "" && settings.SecretKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewSqsClient creates an SQS client honouring the custom endpoint.
func NewSqsClient(cfg aws.Config, settings Settings) *sqs.Client {
	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
	})
}
