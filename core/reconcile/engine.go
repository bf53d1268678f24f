package reconcile

import (
	"context"
	"errors"
	"fmt"

	"queue-manager/core/sqs"
	"queue-manager/core/utils"

	"go.uber.org/zap"
)

// Options controls a reconciliation pass.
type Options struct {
	// DryRun suppresses every mutating remote call. Differences are still
	// computed and reported.
	DryRun bool

	// Logger receives per-attribute progress. Nil defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Apply ensures the queue described by spec exists and matches it.
//
// The pass is strictly sequential: resolve, create if missing, synchronize
// attributes, then read back the final state. No call is retried; the first
// remote failure aborts the pass and is returned wrapped with context.
// Validation runs before any remote call, so an invalid spec has zero side
// effects.
func Apply(ctx context.Context, client sqs.Client, spec *DesiredSpec, opts Options) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	l := opts.logger()
	name := spec.ResolvedName()
	result := &Result{
		Name:   name,
		Type:   spec.EffectiveType(),
		DryRun: opts.DryRun,
	}

	queueURL, err := client.GetQueueURL(ctx, name)
	created := false
	switch {
	case errors.Is(err, sqs.ErrQueueNotFound):
		if opts.DryRun {
			l.Info("Queue does not exist, would create (dry-run)", zap.String("queue", name))
			result.Changed = true
			return result, nil
		}

		// FIFO is decided at creation time and immutable afterwards.
		var createAttrs map[string]string
		if spec.EffectiveType() == QueueTypeFifo {
			createAttrs = map[string]string{"FifoQueue": "true"}
		}

		queueURL, err = client.CreateQueue(ctx, name, createAttrs)
		if err != nil {
			return nil, fmt.Errorf("failed to create queue %q: %w", name, err)
		}
		created = true
		l.Info("Queue created", zap.String("queue", name), zap.String("url", queueURL))

	case err != nil:
		return nil, fmt.Errorf("failed to resolve queue %q: %w", name, err)
	}

	result.QueueURL = queueURL

	synced, err := Sync(ctx, client, queueURL, spec, opts.DryRun, l)
	if err != nil {
		return nil, fmt.Errorf("failed to synchronize queue %q: %w", name, err)
	}
	result.Changed = created || synced

	if !opts.DryRun {
		attrs, err := client.GetQueueAttributes(ctx, queueURL, "All")
		if err != nil {
			return nil, fmt.Errorf("failed to read attributes of queue %q: %w", name, err)
		}
		result.Attributes = ObservedFromRaw(attrs, spec.EffectiveType())
	}

	return result, nil
}

// Delete removes the queue described by spec if it exists. The attribute
// synchronizer is never involved on this path.
func Delete(ctx context.Context, client sqs.Client, spec *DesiredSpec, opts Options) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	l := opts.logger()
	name := spec.ResolvedName()
	result := &Result{
		Name:   name,
		Type:   spec.EffectiveType(),
		DryRun: opts.DryRun,
	}

	queueURL, err := client.GetQueueURL(ctx, name)
	if errors.Is(err, sqs.ErrQueueNotFound) {
		l.Info("Queue does not exist, nothing to delete", zap.String("queue", name))
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve queue %q: %w", name, err)
	}

	result.QueueURL = queueURL
	result.Changed = true

	if opts.DryRun {
		l.Info("Queue exists, would delete (dry-run)", zap.String("queue", name))
		return result, nil
	}

	if err := client.DeleteQueue(ctx, queueURL); err != nil {
		return nil, fmt.Errorf("failed to delete queue %q: %w", name, err)
	}
	l.Info("Queue deleted", zap.String("queue", name))

	return result, nil
}

// ObservedFromRaw converts the raw attribute map returned by the remote API
// into the typed observed report.
func ObservedFromRaw(attrs map[string]string, queueType QueueType) *ObservedAttributes {
	observed := &ObservedAttributes{
		QueueARN:               attrs["QueueArn"],
		VisibilityTimeout:      utils.ToInt(attrs["VisibilityTimeout"]),
		MessageRetentionPeriod: utils.ToInt(attrs["MessageRetentionPeriod"]),
		MaximumMessageSize:     utils.ToInt(attrs["MaximumMessageSize"]),
		DeliveryDelay:          utils.ToInt(attrs["DelaySeconds"]),
		ReceiveMessageWaitTime: utils.ToInt(attrs["ReceiveMessageWaitTimeSeconds"]),
		Policy:                 attrs["Policy"],
		RedrivePolicy:          attrs["RedrivePolicy"],
	}

	// ContentBasedDeduplication only exists on FIFO queues.
	if queueType == QueueTypeFifo {
		dedup := utils.ToBool(attrs["ContentBasedDeduplication"])
		observed.ContentBasedDeduplication = &dedup
	}

	return observed
}
