package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the documents folder and index changes",
	Long: `Runs an incremental index pass, then watches the documents folder and
reindexes automatically as files are added or updated. Press Ctrl+C to
stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up on anything that changed while not watching.
	cmd.Println("Running initial incremental index...")
	report, err := services.Index.Run(ctx, domain.IndexIncremental)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("initial index failed: %w", err)
	}
	if report != nil {
		cmd.Printf("Indexed %d file(s), skipped %d, %d fragment(s).\n",
			report.FilesProcessed, report.FilesSkipped, report.Fragments)
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	if err := services.Watch.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("\nStopped watching.")
	return nil
}
