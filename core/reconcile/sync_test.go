package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"queue-manager/core/reconcile"
	"queue-manager/core/sqs/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testQueueURL = "https://sqs.eu-west-1.amazonaws.com/123456789012/orders"

func intPtr(i int) *int { return &i }

func TestSyncNoDifferences(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:              "orders",
		VisibilityTimeout: intPtr(120),
	}

	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "120"}, nil)

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.NoError(t, err)
	assert.False(t, changed)

	// Remote state already matches, so no write may be issued
	client.AssertNotCalled(t, "SetQueueAttributes", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncWritesOnlyDifferingAttributes(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:                   "orders",
		VisibilityTimeout:      intPtr(120),
		MessageRetentionPeriod: intPtr(86400),
	}

	// Timeout already matches, retention differs
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "120"}, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "MessageRetentionPeriod").
		Return(map[string]string{"MessageRetentionPeriod": "345600"}, nil)
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"MessageRetentionPeriod": "86400"}).
		Return(nil)

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.NoError(t, err)
	assert.True(t, changed)

	client.AssertNumberOfCalls(t, "SetQueueAttributes", 1)
}

func TestSyncDryRunNeverWrites(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:              "orders",
		VisibilityTimeout: intPtr(120),
		Policy:            map[string]any{"Version": "2012-10-17"},
	}

	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "30"}, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "Policy").
		Return(map[string]string{}, nil)

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, true, zap.NewNop())
	assert.NoError(t, err)
	assert.True(t, changed)

	client.AssertNotCalled(t, "SetQueueAttributes", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncJSONDocumentKeyOrder(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name: "orders",
		RedrivePolicy: map[string]any{
			"maxReceiveCount":     5,
			"deadLetterTargetArn": "arn:aws:sqs:eu-west-1:123456789012:dead",
		},
	}

	// Same document remotely, but different key order
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "RedrivePolicy").
		Return(map[string]string{
			"RedrivePolicy": `{"maxReceiveCount": 5, "deadLetterTargetArn": "arn:aws:sqs:eu-west-1:123456789012:dead"}`,
		}, nil)

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestSyncReadFailureIsBestEffort(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:              "orders",
		VisibilityTimeout: intPtr(120),
	}

	// The read fails, which counts as "no existing value" and triggers a write
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(nil, errors.New("throttled"))
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"VisibilityTimeout": "120"}).
		Return(nil)

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.NoError(t, err)
	assert.True(t, changed)
}

func TestSyncWriteFailureIsFatal(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:              "orders",
		VisibilityTimeout: intPtr(120),
	}

	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "30"}, nil)
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"VisibilityTimeout": "120"}).
		Return(errors.New("access denied"))

	_, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "VisibilityTimeout")
}

func TestSyncSkipsFifoOnlyAttributesOnStandard(t *testing.T) {
	client := new(mocks.Client)

	// A standard spec must never read or write ContentBasedDeduplication,
	// even if the field slipped past validation.
	dedup := true
	spec := &reconcile.DesiredSpec{
		Name:                      "orders",
		ContentBasedDeduplication: &dedup,
	}

	changed, err := reconcile.Sync(context.Background(), client, testQueueURL, spec, false, zap.NewNop())
	assert.NoError(t, err)
	assert.False(t, changed)

	client.AssertNotCalled(t, "GetQueueAttributes", mock.Anything, mock.Anything, "ContentBasedDeduplication")
}
