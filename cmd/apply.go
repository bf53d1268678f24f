package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"queue-manager/core/config"
	"queue-manager/core/history"
	"queue-manager/core/logger"
	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"
	"queue-manager/core/storage"
	"queue-manager/feature/drift"
	"queue-manager/feature/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the apply command
	applySpecFile  string
	applyFromStore string
	applyDryRun    bool
)

// applyCmd reconciles one queue towards a desired spec document.
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile a queue towards a desired spec",
	Long: `Reconcile an SQS queue towards the desired state in a spec document.

The spec is a JSON document naming the queue, its type (standard or fifo),
and the attributes to manage. The queue is created if missing; otherwise
only attributes that differ are updated, one write per attribute.

Examples:
  # Apply a local spec file
  queue-manager apply -f specs/orders.json

  # Preview without mutating anything
  queue-manager apply -f specs/orders.json --dry-run

  # Apply a spec stored in the spec bucket
  queue-manager apply --from-store orders`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applySpecFile, "file", "f", "", "Path to a local spec document")
	applyCmd.Flags().StringVar(&applyFromStore, "from-store", "", "Name of a spec document in the spec bucket")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Compute and report differences without mutating")

	RootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if (applySpecFile == "") == (applyFromStore == "") {
		return fmt.Errorf("exactly one of --file or --from-store is required")
	}

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Load the spec document
	spec, err := loadSpec(ctx, cfg, applySpecFile, applyFromStore)
	if err != nil {
		return err
	}

	// Connect to SQS
	client, err := sqs.NewClient(ctx, cfg.Aws)
	if err != nil {
		return fmt.Errorf("failed to create sqs client: %w", err)
	}

	// Connect to run history (optional)
	store := connectHistory(cfg, l)

	svc := queue.NewService(client, store, l)

	l.Info("Applying queue spec",
		zap.String("queue", spec.ResolvedName()),
		zap.Bool("dry_run", applyDryRun),
	)

	result, err := svc.Apply(ctx, spec, applyDryRun)
	if err != nil {
		return fmt.Errorf("failed to apply spec: %w", err)
	}

	printApplyReport(result)
	return nil
}

// loadSpec reads the desired spec from a local file or the spec bucket.
func loadSpec(ctx context.Context, cfg *config.Config, file, fromStore string) (*reconcile.DesiredSpec, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read spec file: %w", err)
		}
		var spec reconcile.DesiredSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse spec file: %w", err)
		}
		return &spec, nil
	}

	specs, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to spec storage: %w", err)
	}
	return drift.NewSpecStore(specs, cfg.Storage.Bucket, cfg.Storage.Prefix).Get(ctx, fromStore)
}

// connectHistory opens the optional run history store. A failed connection
// disables history rather than failing the command.
func connectHistory(cfg *config.Config, l *zap.Logger) *history.Store {
	db, err := history.Connect(cfg.Database)
	if err != nil {
		l.Warn("Run history disabled, database connection failed", zap.Error(err))
		return history.NewStore(nil)
	}

	store := history.NewStore(db)
	if err := store.Migrate(); err != nil {
		l.Warn("Run history disabled, migration failed", zap.Error(err))
		return history.NewStore(nil)
	}
	return store
}

// printApplyReport prints a formatted reconciliation report.
func printApplyReport(result *reconcile.Result) {
	fmt.Println("\n--- Reconciliation Report ---")
	fmt.Printf("Queue:        %s\n", result.Name)
	fmt.Printf("Type:         %s\n", result.Type)
	if result.QueueURL != "" {
		fmt.Printf("URL:          %s\n", result.QueueURL)
	}
	fmt.Printf("Changed:      %v\n", result.Changed)
	fmt.Printf("Dry run:      %v\n", result.DryRun)

	if result.Attributes != nil {
		a := result.Attributes
		fmt.Println("-----------------------------")
		fmt.Printf("ARN:                       %s\n", a.QueueARN)
		fmt.Printf("Visibility timeout:        %d\n", a.VisibilityTimeout)
		fmt.Printf("Message retention period:  %d\n", a.MessageRetentionPeriod)
		fmt.Printf("Maximum message size:      %d\n", a.MaximumMessageSize)
		fmt.Printf("Delivery delay:            %d\n", a.DeliveryDelay)
		fmt.Printf("Receive wait time:         %d\n", a.ReceiveMessageWaitTime)
		if a.ContentBasedDeduplication != nil {
			fmt.Printf("Content deduplication:     %v\n", *a.ContentBasedDeduplication)
		}
	}
	fmt.Println("-----------------------------")
}
