package queue

import (
	"context"
	"fmt"

	"queue-manager/core/history"
	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"

	"go.uber.org/zap"
)

// Service handles queue reconciliation requests.
type Service struct {
	client sqs.Client
	store  *history.Store
	logger *zap.Logger
}

// NewService creates a new queue service. The history store may be backed by
// a nil database, in which case runs are simply not recorded.
func NewService(client sqs.Client, store *history.Store, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Apply reconciles the queue described by spec towards its desired state.
// The outcome is recorded in run history either way.
func (s *Service) Apply(ctx context.Context, spec *reconcile.DesiredSpec, dryRun bool) (*reconcile.Result, error) {
	result, err := reconcile.Apply(ctx, s.client, spec, reconcile.Options{
		DryRun: dryRun,
		Logger: s.logger,
	})
	s.record(ctx, "apply", spec, result, dryRun, err)
	return result, err
}

// Delete removes the queue described by spec, recording the run.
func (s *Service) Delete(ctx context.Context, spec *reconcile.DesiredSpec, dryRun bool) (*reconcile.Result, error) {
	result, err := reconcile.Delete(ctx, s.client, spec, reconcile.Options{
		DryRun: dryRun,
		Logger: s.logger,
	})
	s.record(ctx, "delete", spec, result, dryRun, err)
	return result, err
}

// Observe reads the current remote attributes of the queue without touching it.
func (s *Service) Observe(ctx context.Context, spec *reconcile.DesiredSpec) (*reconcile.ObservedAttributes, error) {
	name := spec.ResolvedName()

	queueURL, err := s.client.GetQueueURL(ctx, name)
	if err != nil {
		return nil, err
	}

	attrs, err := s.client.GetQueueAttributes(ctx, queueURL, "All")
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes of queue %q: %w", name, err)
	}

	return reconcile.ObservedFromRaw(attrs, spec.EffectiveType()), nil
}

// History returns the most recent reconciliation runs for a queue name.
func (s *Service) History(ctx context.Context, queueName string, limit int) ([]history.Run, error) {
	return s.store.Recent(ctx, queueName, limit)
}

// record appends a run history row. History is an audit trail, never a
// dependency of reconciliation, so failures only warn.
func (s *Service) record(ctx context.Context, operation string, spec *reconcile.DesiredSpec, result *reconcile.Result, dryRun bool, runErr error) {
	run := &history.Run{
		QueueName: spec.ResolvedName(),
		QueueType: string(spec.EffectiveType()),
		Operation: operation,
		DryRun:    dryRun,
		Outcome:   "ok",
	}
	if result != nil {
		run.Changed = result.Changed
	}
	if runErr != nil {
		run.Outcome = runErr.Error()
	}

	if err := s.store.Record(ctx, run); err != nil {
		s.logger.Warn("Failed to record run history", zap.Error(err))
	}
}
