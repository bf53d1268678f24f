package drift

import (
	"context"

	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"

	"go.uber.org/zap"
)

// QueueStatus is the drift result for a single declared queue.
type QueueStatus struct {
	// Name is the resolved remote queue name.
	Name string `json:"name"`

	// Type is the declared queue variant.
	Type reconcile.QueueType `json:"type"`

	// Exists reports whether the queue exists remotely.
	Exists bool `json:"exists"`

	// Drifted reports whether an existing queue's attributes differ from
	// the declared spec.
	Drifted bool `json:"drifted"`

	// Error is set when the spec could not be loaded or the check failed.
	Error string `json:"error,omitempty"`
}

// Report aggregates the fleet drift check.
type Report struct {
	// Total is the number of stored specs.
	Total int `json:"total"`

	// Drifted counts existing queues whose attributes differ.
	Drifted int `json:"drifted"`

	// Missing counts declared queues that don't exist remotely.
	Missing int `json:"missing"`

	// Failed counts specs that couldn't be checked.
	Failed int `json:"failed"`

	// Queues holds the per-queue statuses, in spec name order.
	Queues []QueueStatus `json:"queues"`
}

// Service runs fleet drift checks against the stored spec documents.
type Service struct {
	specs  *SpecStore
	client sqs.Client
	logger *zap.Logger
}

// NewService creates a new drift service.
func NewService(specs *SpecStore, client sqs.Client, logger *zap.Logger) *Service {
	return &Service{
		specs:  specs,
		client: client,
		logger: logger,
	}
}

// Specs returns the underlying spec store.
func (s *Service) Specs() *SpecStore {
	return s.specs
}

// Check loads every stored spec and dry-runs it against the live queue.
// Individual failures are reported per queue rather than aborting the sweep;
// only a failure to enumerate the store itself is fatal.
func (s *Service) Check(ctx context.Context) (*Report, error) {
	names, err := s.specs.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(names), Queues: make([]QueueStatus, 0, len(names))}

	for _, name := range names {
		status := s.checkOne(ctx, name)
		switch {
		case status.Error != "":
			report.Failed++
		case !status.Exists:
			report.Missing++
		case status.Drifted:
			report.Drifted++
		}
		report.Queues = append(report.Queues, status)
	}

	return report, nil
}

func (s *Service) checkOne(ctx context.Context, name string) QueueStatus {
	spec, err := s.specs.Get(ctx, name)
	if err != nil {
		s.logger.Warn("Failed to load spec", zap.String("spec", name), zap.Error(err))
		return QueueStatus{Name: name, Error: err.Error()}
	}

	status := QueueStatus{
		Name: spec.ResolvedName(),
		Type: spec.EffectiveType(),
	}

	result, err := reconcile.Apply(ctx, s.client, spec, reconcile.Options{
		DryRun: true,
		Logger: s.logger,
	})
	if err != nil {
		s.logger.Warn("Drift check failed", zap.String("queue", status.Name), zap.Error(err))
		status.Error = err.Error()
		return status
	}

	// A dry-run against a missing queue reports changed with no handle.
	status.Exists = result.QueueURL != ""
	status.Drifted = status.Exists && result.Changed

	return status
}
