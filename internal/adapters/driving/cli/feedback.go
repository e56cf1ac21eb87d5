package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

var feedbackExportLimit int

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Inspect recorded answer feedback",
	Long: `Answers rated in the chat land in a local feedback ledger; helpful ones
also grow the golden evaluation dataset. These commands read them back.`,
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feedback and golden dataset statistics",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackStats,
}

var feedbackExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export feedback entries as JSON, newest first",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackExport,
}

func init() {
	feedbackExportCmd.Flags().IntVarP(&feedbackExportLimit, "limit", "n", 0, "maximum entries to export (0 = all)")
	feedbackCmd.AddCommand(feedbackStatsCmd)
	feedbackCmd.AddCommand(feedbackExportCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackStats(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	ctx := cmd.Context()

	stats, err := feedbackService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect feedback stats: %w", err)
	}

	cmd.Println("Feedback")
	cmd.Println("========")
	cmd.Printf("Total:       %d\n", stats.Total)
	cmd.Printf("Helpful:     %d\n", stats.ByVerdict[domain.VerdictHelpful])
	cmd.Printf("Not helpful: %d\n", stats.ByVerdict[domain.VerdictNotHelpful])
	cmd.Printf("Corrected:   %d\n", stats.ByVerdict[domain.VerdictCorrected])

	golden, err := feedbackService.GoldenStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect golden dataset stats: %w", err)
	}

	cmd.Println()
	cmd.Println("Golden Dataset")
	cmd.Println("==============")
	cmd.Printf("Questions: %d\n", golden.Total)
	for category, count := range golden.Categories {
		cmd.Printf("  %s: %d\n", category, count)
	}

	return nil
}

func runFeedbackExport(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	entries, err := feedbackService.Export(cmd.Context(), feedbackExportLimit)
	if err != nil {
		return fmt.Errorf("failed to export feedback: %w", err)
	}

	type entryJSON struct {
		ID        int64     `json:"id"`
		At        time.Time `json:"at"`
		UserID    string    `json:"user_id"`
		Question  string    `json:"question"`
		Answer    string    `json:"answer"`
		Sources   []string  `json:"sources"`
		Relevance float64   `json:"relevance"`
		Verdict   string    `json:"verdict"`
	}

	out := make([]entryJSON, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryJSON{
			ID:        entry.ID,
			At:        entry.At,
			UserID:    entry.UserID,
			Question:  entry.Question,
			Answer:    entry.Answer,
			Sources:   sourceStrings(entry.Sources),
			Relevance: entry.Relevance,
			Verdict:   entry.Verdict.String(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func sourceStrings(sources []domain.Source) []string {
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		out = append(out, formatSource(source))
	}
	return out
}
