package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

var indexFull bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the documents folder",
	Long: `Extracts, chunks and embeds every supported document in the documents
folder and stores the fragments in the vector store.

By default the run is incremental: files already listed in the index
ledger are skipped. Use --full to clear the collection and the ledger
and reindex everything.

Press Ctrl+C to stop after the file currently being processed.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexFull, "full", false, "clear the index and reindex everything")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	mode := domain.IndexIncremental
	if indexFull {
		mode = domain.IndexFull
	}

	// Ctrl+C requests a cooperative stop: the file in flight finishes,
	// the ledger stays consistent. A second Ctrl+C kills the process.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			cmd.Println("\nStopping after the current file...")
			services.Index.Stop()
			signal.Stop(sigCh)
		}
	}()

	cmd.Printf("Indexing documents (%s)...\n", mode)

	report, err := indexWithProgress(cmd.Context(), cmd, services.Index, mode)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	printIndexReport(cmd, report)
	return nil
}

// indexWithProgress runs the indexer while displaying progress updates.
func indexWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	indexer driving.IndexManager,
	mode domain.IndexMode,
) (*domain.IndexReport, error) {
	type runResult struct {
		report *domain.IndexReport
		err    error
	}

	resultCh := make(chan runResult, 1)
	go func() {
		report, err := indexer.Run(ctx, mode)
		resultCh <- runResult{report: report, err: err}
	}()

	// Poll status every 500ms.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastFile := ""
	for {
		select {
		case result := <-resultCh:
			if lastFile != "" {
				cmd.Println()
			}
			return result.report, result.err
		case <-ticker.C:
			status := indexer.Status()
			if status.Running && status.CurrentFile != "" && status.CurrentFile != lastFile {
				cmd.Printf("\rProcessing %s (%d files, %d fragments)",
					status.CurrentFile, status.FilesProcessed, status.Fragments)
				lastFile = status.CurrentFile
			}
		}
	}
}

func printIndexReport(cmd *cobra.Command, report *domain.IndexReport) {
	cmd.Println()
	cmd.Printf("Indexed:   %d file(s)\n", report.FilesProcessed)
	cmd.Printf("Skipped:   %d file(s)\n", report.FilesSkipped)
	cmd.Printf("Fragments: %d\n", report.Fragments)
	cmd.Printf("Duration:  %s\n", report.Duration.Round(time.Millisecond))
	if report.Fragments > 0 {
		cmd.Printf("Rate:      %.1f fragments/s\n", report.FragmentsPerSecond())
	}

	if len(report.Failures) > 0 {
		cmd.Printf("\nFailed (%d):\n", len(report.Failures))
		for _, failure := range report.Failures {
			cmd.Printf("  %s: %s\n", failure.File, failure.Reason)
		}
	}
	if report.Stopped {
		cmd.Println("\nRun stopped early. Run 'lifta index' again to continue.")
	}
}
