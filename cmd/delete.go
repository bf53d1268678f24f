package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"queue-manager/core/config"
	"queue-manager/core/logger"
	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"
	"queue-manager/feature/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the delete command
	deleteFifo   bool
	deleteDryRun bool
	deleteYes    bool
)

// deleteCmd removes a queue.
var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a queue",
	Long: `Delete an SQS queue by name.

FIFO queues are resolved with the .fifo suffix appended automatically.
Deleting a queue discards its messages; a confirmation prompt guards the
operation unless --yes is given.

Examples:
  # Delete with interactive confirmation
  queue-manager delete orders

  # Delete a FIFO queue non-interactively
  queue-manager delete orders --fifo --yes

  # Check what would happen
  queue-manager delete orders --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteFifo, "fifo", false, "Treat the name as a FIFO queue")
	deleteCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Report without deleting")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Auto-confirm deletion (non-interactive)")

	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	spec := &reconcile.DesiredSpec{Name: args[0]}
	if deleteFifo {
		spec.Type = reconcile.QueueTypeFifo
	}

	// Confirm before touching anything
	if !deleteDryRun && !confirmDestructiveAction(spec.ResolvedName()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Connect to SQS
	client, err := sqs.NewClient(ctx, cfg.Aws)
	if err != nil {
		return fmt.Errorf("failed to create sqs client: %w", err)
	}

	svc := queue.NewService(client, connectHistory(cfg, l), l)

	result, err := svc.Delete(ctx, spec, deleteDryRun)
	if err != nil {
		return fmt.Errorf("failed to delete queue: %w", err)
	}

	if !result.Changed {
		l.Info("Queue does not exist, nothing to delete", zap.String("queue", result.Name))
		return nil
	}
	if result.DryRun {
		l.Info("Dry-run mode: queue exists and would be deleted", zap.String("queue", result.Name))
		return nil
	}

	l.Info("Queue deleted", zap.String("queue", result.Name))
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(queueName string) bool {
	if deleteYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to confirm deleting queue %q: ", queueName)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
