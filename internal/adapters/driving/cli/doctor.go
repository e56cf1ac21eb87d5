package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check connectivity to every backend",
	Long: `Probes the embedding backend, the LLM backend, the vector store and
the external extraction tools (poppler, tesseract), and reports the
state of each. Exits non-zero when a required backend is down.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorBuilder == nil {
		return errors.New("doctor not configured")
	}

	doctor, err := doctorBuilder()
	if err != nil {
		return fmt.Errorf("failed to prepare checks: %w", err)
	}

	results := doctor.Run(cmd.Context())

	failed := 0
	for _, result := range results {
		mark := "OK  "
		if !result.OK {
			mark = "FAIL"
			if !result.Required {
				mark = "WARN"
			}
		}
		cmd.Printf("%s %-18s %s\n", mark, result.Name, result.Detail)
		if !result.OK && result.Required {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d required check(s) failed", failed)
	}

	cmd.Println("\nAll required backends are reachable.")
	return nil
}
