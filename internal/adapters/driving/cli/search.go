package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

var (
	searchTarget    string
	searchLimit     int
	searchThreshold float64
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search page elements",
	Long: `Ranks the rows, cards and list items inside the target element against
the query. Every query character must appear in order in the element text.
Results scoring above the threshold are listed best first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTarget, "target", "t", "", "CSS selector of the element to search (default page.target)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = no limit)")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "minimum score, exclusive (0 = default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errNotConfigured("search")
	}

	opts := domain.SearchOptions{
		Target:    searchTarget,
		Threshold: searchThreshold,
		Limit:     searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd.OutOrStdout(), results)
	}
	return outputSearchTable(cmd.OutOrStdout(), results)
}

type searchResultJSON struct {
	ID    string   `json:"id"`
	Kind  string   `json:"kind"`
	Index int      `json:"index"`
	Text  string   `json:"text"`
	Cells []string `json:"cells,omitempty"`
	Score float64  `json:"score"`
}

func outputSearchJSON(w io.Writer, results []domain.SearchResult) error {
	out := make([]searchResultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultJSON{
			ID:    r.Element.ID,
			Kind:  r.Element.Kind.String(),
			Index: r.Element.Index,
			Text:  r.Element.Text,
			Cells: r.Element.Cells,
			Score: r.Score,
		})
	}
	return writeJSON(w, out)
}

func outputSearchTable(w io.Writer, results []domain.SearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := newTable()
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Score"), bold.Sprint("Element"), bold.Sprint("Text"))
	for i, r := range results {
		tbl.AddRow(i+1, formatScore(r.Score), faint.Sprint(r.Element.ID), r.Element.Text)
	}
	tbl.RightAlign(0)

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// newTable returns a table sized to the terminal.
func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(textColumnWidth())
	tbl.Wrap = true
	return tbl
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
