package reconcile

import (
	"context"
	"fmt"

	"queue-manager/core/sqs"

	"go.uber.org/zap"
)

// ReadStatus classifies the outcome of a single remote attribute read.
type ReadStatus int

const (
	// ReadFound means the attribute exists and a value was returned.
	ReadFound ReadStatus = iota

	// ReadNotSet means the queue has no value for the attribute.
	ReadNotSet

	// ReadFailed means the read call itself failed. The synchronizer
	// treats this like ReadNotSet (best effort) but logs it, so genuine
	// connectivity problems stay observable.
	ReadFailed
)

// Sync walks the managed-attribute catalog and brings every attribute the
// spec explicitly sets in line with the remote queue. It returns whether any
// attribute differed. Evaluation never short-circuits: every catalog row is
// checked even after a difference is found, so dry-run output is complete.
//
// A write failure is fatal and aborts the pass; the changed flag still
// reflects the attributes evaluated up to that point.
func Sync(ctx context.Context, client sqs.Client, queueURL string, spec *DesiredSpec, dryRun bool, l *zap.Logger) (bool, error) {
	fifo := spec.EffectiveType() == QueueTypeFifo
	changed := false

	for _, attr := range Catalog {
		if attr.FifoOnly && !fifo {
			continue
		}

		// Unset fields are never written; only explicit values mutate.
		desired, ok := attr.Value(spec)
		if !ok {
			continue
		}

		// A not-set or unreadable attribute compares as the empty string.
		observed, _ := readAttribute(ctx, client, queueURL, attr.Key, l)
		if !Different(desired, observed, attr.Kind) {
			continue
		}

		changed = true

		if dryRun {
			l.Info("Attribute differs (dry-run, not writing)",
				zap.String("attribute", attr.Field),
				zap.String("desired", desired),
				zap.String("observed", observed),
			)
			continue
		}

		if err := client.SetQueueAttributes(ctx, queueURL, map[string]string{attr.Key: desired}); err != nil {
			return changed, fmt.Errorf("failed to set attribute %s: %w", attr.Key, err)
		}

		l.Info("Attribute updated",
			zap.String("attribute", attr.Field),
			zap.String("value", desired),
		)
	}

	return changed, nil
}

// readAttribute reads one attribute's current raw value. Read failures are
// reported as ReadFailed with an empty value rather than propagated; the
// caller decides what absence means.
func readAttribute(ctx context.Context, client sqs.Client, queueURL, key string, l *zap.Logger) (string, ReadStatus) {
	attrs, err := client.GetQueueAttributes(ctx, queueURL, key)
	if err != nil {
		l.Warn("Attribute read failed, treating as not set",
			zap.String("attribute", key),
			zap.Error(err),
		)
		return "", ReadFailed
	}

	value, ok := attrs[key]
	if !ok {
		return "", ReadNotSet
	}
	return value, ReadFound
}
