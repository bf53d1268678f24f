package sqs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// ErrQueueNotFound is returned when the named queue does not exist.
// Callers must treat it differently from transport or permission errors.
var ErrQueueNotFound = errors.New("queue not found")

// Client defines the interface for queue management operations.
type Client interface {
	// GetQueueURL resolves a queue name to its URL.
	// Returns ErrQueueNotFound if no queue with that name exists.
	GetQueueURL(ctx context.Context, name string) (string, error)
	// CreateQueue creates a queue with the given creation attributes and
	// returns its URL. Attributes may be nil.
	CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error)
	// DeleteQueue deletes the queue at the given URL.
	DeleteQueue(ctx context.Context, queueURL string) error
	// GetQueueAttributes reads the named attributes of a queue.
	// Pass "All" to read every attribute. Attributes the queue does not
	// have are simply absent from the returned map.
	GetQueueAttributes(ctx context.Context, queueURL string, names ...string) (map[string]string, error)
	// SetQueueAttributes writes the given attributes on a queue.
	SetQueueAttributes(ctx context.Context, queueURL string, attributes map[string]string) error
}

// NewClient creates a new SQS client based on the configuration.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		// Per-request timeout; the SDK has no default one.
		awsconfig.WithHTTPClient(&http.Client{Timeout: time.Duration(timeout) * time.Second}),
	}

	// Static credentials override the default chain when configured.
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	api := awssqs.NewFromConfig(awsCfg, func(o *awssqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &sqsClientWrapper{api: api}, nil
}

type sqsClientWrapper struct {
	api *awssqs.Client
}

func (c *sqsClientWrapper) GetQueueURL(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetQueueUrl(ctx, &awssqs.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		var notFound *types.QueueDoesNotExist
		if errors.As(err, &notFound) {
			return "", ErrQueueNotFound
		}
		return "", err
	}
	return aws.ToString(out.QueueUrl), nil
}

func (c *sqsClientWrapper) CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error) {
	out, err := c.api.CreateQueue(ctx, &awssqs.CreateQueueInput{
		QueueName:  aws.String(name),
		Attributes: attributes,
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.QueueUrl), nil
}

func (c *sqsClientWrapper) DeleteQueue(ctx context.Context, queueURL string) error {
	_, err := c.api.DeleteQueue(ctx, &awssqs.DeleteQueueInput{
		QueueUrl: aws.String(queueURL),
	})
	return err
}

func (c *sqsClientWrapper) GetQueueAttributes(ctx context.Context, queueURL string, names ...string) (map[string]string, error) {
	attrNames := make([]types.QueueAttributeName, 0, len(names))
	for _, n := range names {
		attrNames = append(attrNames, types.QueueAttributeName(n))
	}

	out, err := c.api.GetQueueAttributes(ctx, &awssqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(queueURL),
		AttributeNames: attrNames,
	})
	if err != nil {
		return nil, err
	}
	return out.Attributes, nil
}

func (c *sqsClientWrapper) SetQueueAttributes(ctx context.Context, queueURL string, attributes map[string]string) error {
	_, err := c.api.SetQueueAttributes(ctx, &awssqs.SetQueueAttributesInput{
		QueueUrl:   aws.String(queueURL),
		Attributes: attributes,
	})
	return err
}
