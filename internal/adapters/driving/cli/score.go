package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

var scoreCmd = &cobra.Command{
	Use:   "score [query] [candidate]",
	Short: "Score a candidate string against a query",
	Long: `Prints the fuzzy match score of candidate for query, between 0 and 1.
Zero means the query characters do not all appear in order.`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	score := searchService.Score(args[0], args[1])
	verdict := "no match"
	if score > domain.MatchThreshold {
		verdict = "match"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f (%s)\n", score, verdict)
	return nil
}

// formatScore renders a score for table output.
func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
