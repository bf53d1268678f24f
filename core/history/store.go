package history

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Run is one recorded reconciliation pass.
type Run struct {
	// ID is the auto-incremented row ID.
	ID uint `gorm:"primaryKey" json:"id"`

	// QueueName is the resolved remote queue name (including any FIFO suffix).
	QueueName string `gorm:"size:128;index" json:"queue_name"`

	// QueueType is the queue variant (standard, fifo).
	QueueType string `gorm:"size:16" json:"queue_type"`

	// Operation is the reconciliation verb (apply, delete).
	Operation string `gorm:"size:16" json:"operation"`

	// Changed reports whether the pass mutated (or would mutate) remote state.
	Changed bool `json:"changed"`

	// DryRun reports whether mutations were suppressed.
	DryRun bool `json:"dry_run"`

	// Outcome is "ok" for successful passes, otherwise the failure message.
	Outcome string `gorm:"size:1024" json:"outcome"`

	// CreatedAt is the time the pass finished.
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the default GORM table name.
func (Run) TableName() string {
	return "reconcile_runs"
}

// Store reads and writes reconciliation run records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new history store. A nil db yields a disabled store
// whose methods are no-ops, so callers don't need to branch on whether the
// optional database connection succeeded.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Enabled reports whether runs are actually persisted.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Migrate creates or updates the runs table schema.
func (s *Store) Migrate() error {
	if !s.Enabled() {
		return nil
	}
	return s.db.AutoMigrate(&Run{})
}

// Record appends one run record.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if !s.Enabled() {
		return nil
	}
	return s.db.WithContext(ctx).Create(run).Error
}

// Recent returns the most recent runs for a queue, newest first.
func (s *Store) Recent(ctx context.Context, queueName string, limit int) ([]Run, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.WithContext(ctx).
		Where("queue_name = ?", queueName).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
