package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documentation",
	Long: `Answers a single question from the indexed documents, citing the
source file and page for every fragment used. When the answer looks
inconclusive, follow-up questions to narrow the query are suggested.

For a conversation with history, use 'lifta chat'.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	answer, err := services.Query.Ask(ctx, args[0], nil)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var clarifications []string
	if answer.NeedsClarification {
		// Best effort: the answer still prints without them.
		clarifications, _ = services.Query.Clarifications(ctx, args[0]) //nolint:errcheck
	}

	if askJSON {
		return outputAskJSON(cmd, answer, clarifications)
	}
	return outputAskText(cmd, answer, clarifications)
}

func outputAskText(cmd *cobra.Command, answer *domain.Answer, clarifications []string) error {
	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for _, source := range answer.Sources {
			cmd.Printf("  - %s\n", formatSource(source))
		}
		cmd.Printf("\nRelevance: %.1f%%\n", answer.Relevance)
	}

	if len(clarifications) > 0 {
		cmd.Println("\nTo narrow this down, you could ask:")
		for i, question := range clarifications {
			cmd.Printf("  %d. %s\n", i+1, question)
		}
	}
	return nil
}

func outputAskJSON(cmd *cobra.Command, answer *domain.Answer, clarifications []string) error {
	type sourceJSON struct {
		File string `json:"file"`
		Page int    `json:"page"`
	}

	sources := make([]sourceJSON, 0, len(answer.Sources))
	for _, source := range answer.Sources {
		sources = append(sources, sourceJSON{File: source.File, Page: source.Page})
	}

	payload := struct {
		Answer             string       `json:"answer"`
		Sources            []sourceJSON `json:"sources"`
		Relevance          float64      `json:"relevance"`
		NeedsClarification bool         `json:"needs_clarification"`
		Clarifications     []string     `json:"clarifications,omitempty"`
	}{
		Answer:             answer.Text,
		Sources:            sources,
		Relevance:          answer.Relevance,
		NeedsClarification: answer.NeedsClarification,
		Clarifications:     clarifications,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// formatSource renders a citation. Page 0 means the document has no
// page structure (markdown, plain text).
func formatSource(source domain.Source) string {
	if source.Page > 0 {
		return fmt.Sprintf("%s, p.%d", source.File, source.Page)
	}
	return source.File
}
