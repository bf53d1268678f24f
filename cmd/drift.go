package cmd

import (
	"context"
	"fmt"

	"queue-manager/core/config"
	"queue-manager/core/logger"
	"queue-manager/core/sqs"
	"queue-manager/core/storage"
	"queue-manager/feature/drift"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// driftCmd runs the fleet drift check over all stored specs.
var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Report drift across all declared queues",
	Long: `Check every spec document in the spec bucket against the live queues.

The check is always a dry run: it reports which queues drifted from their
declared attributes, which are missing entirely, and which could not be
checked. No remote state is ever modified.`,
	RunE: runDrift,
}

func init() {
	RootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	// Connect to spec storage
	specs, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to spec storage: %w", err)
	}

	// Connect to SQS
	client, err := sqs.NewClient(ctx, cfg.Aws)
	if err != nil {
		return fmt.Errorf("failed to create sqs client: %w", err)
	}

	svc := drift.NewService(drift.NewSpecStore(specs, cfg.Storage.Bucket, cfg.Storage.Prefix), client, l)

	l.Info("Running fleet drift check", zap.String("bucket", cfg.Storage.Bucket))

	report, err := svc.Check(ctx)
	if err != nil {
		return fmt.Errorf("failed to run drift check: %w", err)
	}

	printDriftReport(report)
	return nil
}

// printDriftReport prints a formatted fleet drift report.
func printDriftReport(report *drift.Report) {
	fmt.Println("\n--- Fleet Drift Report ---")
	fmt.Printf("Declared queues:  %d\n", report.Total)
	fmt.Printf("Drifted:          %d\n", report.Drifted)
	fmt.Printf("Missing:          %d\n", report.Missing)
	fmt.Printf("Failed checks:    %d\n", report.Failed)
	fmt.Println("--------------------------")

	for _, q := range report.Queues {
		switch {
		case q.Error != "":
			fmt.Printf("ERROR   %-40s %s\n", q.Name, q.Error)
		case !q.Exists:
			fmt.Printf("MISSING %-40s\n", q.Name)
		case q.Drifted:
			fmt.Printf("DRIFT   %-40s\n", q.Name)
		default:
			fmt.Printf("OK      %-40s\n", q.Name)
		}
	}
}
