package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long: `Shows what is currently indexed: the files covered by the ledger, the
fragment count and dimensionality of the vector collection, and the
embedding cache size.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	stats, err := services.Index.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	cmd.Println("Index Statistics")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("Indexed files:   %d\n", len(stats.IndexedFiles))
	for _, file := range stats.IndexedFiles {
		cmd.Printf("  - %s\n", file)
	}
	cmd.Println()
	cmd.Printf("Fragments:       %d\n", stats.Fragments)
	cmd.Printf("Dimensions:      %d\n", stats.Dimension)
	cmd.Printf("Embedding model: %s\n", stats.EmbeddingModel)
	cmd.Printf("Cache entries:   %d\n", stats.CacheEntries)

	return nil
}
