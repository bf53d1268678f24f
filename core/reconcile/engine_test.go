package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"
	"queue-manager/core/sqs/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestApplyCreatesMissingQueue(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:                   "orders",
		VisibilityTimeout:      intPtr(120),
		MessageRetentionPeriod: intPtr(86400),
	}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", sqs.ErrQueueNotFound)
	client.On("CreateQueue", mock.Anything, "orders", map[string]string(nil)).
		Return(testQueueURL, nil)

	// Fresh queue: both managed attributes differ from the defaults
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "30"}, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "MessageRetentionPeriod").
		Return(map[string]string{"MessageRetentionPeriod": "345600"}, nil)
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"VisibilityTimeout": "120"}).
		Return(nil)
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"MessageRetentionPeriod": "86400"}).
		Return(nil)

	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "All").
		Return(map[string]string{
			"QueueArn":                      "arn:aws:sqs:eu-west-1:123456789012:orders",
			"VisibilityTimeout":             "120",
			"MessageRetentionPeriod":        "86400",
			"MaximumMessageSize":            "262144",
			"DelaySeconds":                  "0",
			"ReceiveMessageWaitTimeSeconds": "0",
		}, nil)

	result, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "orders", result.Name)
	assert.Equal(t, testQueueURL, result.QueueURL)

	assert.NotNil(t, result.Attributes)
	assert.Equal(t, 120, result.Attributes.VisibilityTimeout)
	assert.Equal(t, "arn:aws:sqs:eu-west-1:123456789012:orders", result.Attributes.QueueARN)
	assert.Nil(t, result.Attributes.ContentBasedDeduplication)

	client.AssertNumberOfCalls(t, "SetQueueAttributes", 2)
}

func TestApplyConvergedQueueIsIdempotent(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{
		Name:              "orders",
		VisibilityTimeout: intPtr(120),
	}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "120"}, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "All").
		Return(map[string]string{"VisibilityTimeout": "120"}, nil)

	result, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.False(t, result.Changed)

	client.AssertNotCalled(t, "CreateQueue", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "SetQueueAttributes", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyFifoCreation(t *testing.T) {
	client := new(mocks.Client)
	dedup := true
	spec := &reconcile.DesiredSpec{
		Name:                      "orders",
		Type:                      reconcile.QueueTypeFifo,
		ContentBasedDeduplication: &dedup,
	}

	fifoURL := testQueueURL + ".fifo"

	// The resolved name carries the suffix exactly once
	client.On("GetQueueURL", mock.Anything, "orders.fifo").
		Return("", sqs.ErrQueueNotFound)
	client.On("CreateQueue", mock.Anything, "orders.fifo", map[string]string{"FifoQueue": "true"}).
		Return(fifoURL, nil)

	client.On("GetQueueAttributes", mock.Anything, fifoURL, "ContentBasedDeduplication").
		Return(map[string]string{"ContentBasedDeduplication": "false"}, nil)
	client.On("SetQueueAttributes", mock.Anything, fifoURL, map[string]string{"ContentBasedDeduplication": "true"}).
		Return(nil)

	client.On("GetQueueAttributes", mock.Anything, fifoURL, "All").
		Return(map[string]string{
			"QueueArn":                  "arn:aws:sqs:eu-west-1:123456789012:orders.fifo",
			"ContentBasedDeduplication": "true",
		}, nil)

	result, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "orders.fifo", result.Name)

	assert.NotNil(t, result.Attributes.ContentBasedDeduplication)
	assert.True(t, *result.Attributes.ContentBasedDeduplication)
}

func TestApplyDryRunOnMissingQueue(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders", VisibilityTimeout: intPtr(120)}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", sqs.ErrQueueNotFound)

	result, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{DryRun: true})
	assert.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, result.QueueURL)

	// Dry-run reports without observed attributes and without creating
	assert.Nil(t, result.Attributes)
	client.AssertNotCalled(t, "CreateQueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyDryRunOnExistingQueue(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders", VisibilityTimeout: intPtr(120)}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "30"}, nil)

	result, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{DryRun: true})
	assert.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Nil(t, result.Attributes)

	client.AssertNotCalled(t, "SetQueueAttributes", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyInvalidSpecMakesNoRemoteCalls(t *testing.T) {
	client := new(mocks.Client)
	dedup := true
	spec := &reconcile.DesiredSpec{
		Name:                      "orders",
		ContentBasedDeduplication: &dedup, // fifo-only on a standard queue
	}

	_, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{})
	var cfgErr *reconcile.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "GetQueueURL", mock.Anything, mock.Anything)
}

func TestApplyResolutionFailureIsFatal(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", errors.New("access denied"))

	_, err := reconcile.Apply(context.Background(), client, spec, reconcile.Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "orders")

	client.AssertNotCalled(t, "CreateQueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteExistingQueue(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)
	client.On("DeleteQueue", mock.Anything, testQueueURL).
		Return(nil)

	result, err := reconcile.Delete(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.True(t, result.Changed)

	client.AssertNumberOfCalls(t, "DeleteQueue", 1)
}

func TestDeleteMissingQueue(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", sqs.ErrQueueNotFound)

	result, err := reconcile.Delete(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.False(t, result.Changed)

	client.AssertNotCalled(t, "DeleteQueue", mock.Anything, mock.Anything)
}

func TestDeleteDryRun(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)

	result, err := reconcile.Delete(context.Background(), client, spec, reconcile.Options{DryRun: true})
	assert.NoError(t, err)
	assert.True(t, result.Changed)

	client.AssertNotCalled(t, "DeleteQueue", mock.Anything, mock.Anything)
}

func TestDeleteResolvesFifoName(t *testing.T) {
	client := new(mocks.Client)
	spec := &reconcile.DesiredSpec{Name: "orders", Type: reconcile.QueueTypeFifo}

	client.On("GetQueueURL", mock.Anything, "orders.fifo").
		Return("", sqs.ErrQueueNotFound)

	result, err := reconcile.Delete(context.Background(), client, spec, reconcile.Options{})
	assert.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, "orders.fifo", result.Name)
}
