package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of sqs.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetQueueURL(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *Client) CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error) {
	args := m.Called(ctx, name, attributes)
	return args.String(0), args.Error(1)
}

func (m *Client) DeleteQueue(ctx context.Context, queueURL string) error {
	args := m.Called(ctx, queueURL)
	return args.Error(0)
}

func (m *Client) GetQueueAttributes(ctx context.Context, queueURL string, names ...string) (map[string]string, error) {
	callArgs := make([]any, 0, len(names)+2)
	callArgs = append(callArgs, ctx, queueURL)
	for _, n := range names {
		callArgs = append(callArgs, n)
	}
	args := m.Called(callArgs...)
	if attrs, ok := args.Get(0).(map[string]string); ok {
		return attrs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SetQueueAttributes(ctx context.Context, queueURL string, attributes map[string]string) error {
	args := m.Called(ctx, queueURL, attributes)
	return args.Error(0)
}
