package queue_test

import (
	"context"
	"errors"
	"testing"

	"queue-manager/core/history"
	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"
	"queue-manager/core/sqs/mocks"
	"queue-manager/feature/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testQueueURL = "https://sqs.eu-west-1.amazonaws.com/123456789012/orders"

func intPtr(i int) *int { return &i }

func setupStore(t *testing.T) *history.Store {
	db, err := history.Connect(history.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)

	store := history.NewStore(db)
	assert.NoError(t, store.Migrate())
	return store
}

func TestServiceApplyRecordsRun(t *testing.T) {
	client := new(mocks.Client)
	store := setupStore(t)
	svc := queue.NewService(client, store, zap.NewNop())

	spec := &reconcile.DesiredSpec{Name: "orders", VisibilityTimeout: intPtr(120)}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "VisibilityTimeout").
		Return(map[string]string{"VisibilityTimeout": "30"}, nil)
	client.On("SetQueueAttributes", mock.Anything, testQueueURL, map[string]string{"VisibilityTimeout": "120"}).
		Return(nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "All").
		Return(map[string]string{"VisibilityTimeout": "120"}, nil)

	result, err := svc.Apply(context.Background(), spec, false)
	assert.NoError(t, err)
	assert.True(t, result.Changed)

	runs, err := svc.History(context.Background(), "orders", 10)
	assert.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, "apply", runs[0].Operation)
	assert.True(t, runs[0].Changed)
	assert.Equal(t, "ok", runs[0].Outcome)
}

func TestServiceApplyRecordsFailure(t *testing.T) {
	client := new(mocks.Client)
	store := setupStore(t)
	svc := queue.NewService(client, store, zap.NewNop())

	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", errors.New("access denied"))

	_, err := svc.Apply(context.Background(), spec, false)
	assert.Error(t, err)

	runs, err := svc.History(context.Background(), "orders", 10)
	assert.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Contains(t, runs[0].Outcome, "access denied")
	assert.False(t, runs[0].Changed)
}

func TestServiceDeleteRecordsRun(t *testing.T) {
	client := new(mocks.Client)
	store := setupStore(t)
	svc := queue.NewService(client, store, zap.NewNop())

	spec := &reconcile.DesiredSpec{Name: "orders", Type: reconcile.QueueTypeFifo}

	client.On("GetQueueURL", mock.Anything, "orders.fifo").
		Return(testQueueURL, nil)
	client.On("DeleteQueue", mock.Anything, testQueueURL).
		Return(nil)

	result, err := svc.Delete(context.Background(), spec, false)
	assert.NoError(t, err)
	assert.True(t, result.Changed)

	runs, err := svc.History(context.Background(), "orders.fifo", 10)
	assert.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, "delete", runs[0].Operation)
	assert.Equal(t, "fifo", runs[0].QueueType)
}

func TestServiceObserve(t *testing.T) {
	client := new(mocks.Client)
	svc := queue.NewService(client, history.NewStore(nil), zap.NewNop())

	spec := &reconcile.DesiredSpec{Name: "orders"}

	client.On("GetQueueURL", mock.Anything, "orders").
		Return(testQueueURL, nil)
	client.On("GetQueueAttributes", mock.Anything, testQueueURL, "All").
		Return(map[string]string{
			"QueueArn":          "arn:aws:sqs:eu-west-1:123456789012:orders",
			"VisibilityTimeout": "120",
		}, nil)

	observed, err := svc.Observe(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, 120, observed.VisibilityTimeout)
	assert.Nil(t, observed.ContentBasedDeduplication)
}

func TestServiceObserveMissingQueue(t *testing.T) {
	client := new(mocks.Client)
	svc := queue.NewService(client, history.NewStore(nil), zap.NewNop())

	client.On("GetQueueURL", mock.Anything, "orders").
		Return("", sqs.ErrQueueNotFound)

	_, err := svc.Observe(context.Background(), &reconcile.DesiredSpec{Name: "orders"})
	assert.ErrorIs(t, err, sqs.ErrQueueNotFound)
}
