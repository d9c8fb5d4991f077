package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

var (
	filterTarget string
	filterAll    bool
	filterJSON   bool
)

var filterCmd = &cobra.Command{
	Use:   "filter [query]",
	Short: "Filter page elements by substring",
	Long: `Applies the table filter to the target element: elements whose text
contains the query (case-insensitive) stay visible and are highlighted,
the rest are hidden. An empty query shows everything.

Only table rows with data cells are listed; header rows (<th> only) are
left out of both the search and the filter.

Highlighted elements are marked with '*'. Use --all to list hidden
elements too.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterTarget, "target", "t", "", "CSS selector of the element to filter (default page.target)")
	filterCmd.Flags().BoolVarP(&filterAll, "all", "a", false, "also list hidden elements")
	filterCmd.Flags().BoolVar(&filterJSON, "json", false, "output element states as JSON")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) == 1 {
		query = args[0]
	}

	if searchService == nil {
		return errNotConfigured("search")
	}

	states, err := searchService.Filter(cmd.Context(), query, filterTarget)
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	if filterJSON {
		return outputFilterJSON(cmd.OutOrStdout(), states)
	}
	return outputFilterTable(cmd.OutOrStdout(), states, filterAll)
}

type elementStateJSON struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Visible     bool   `json:"visible"`
	Highlighted bool   `json:"highlighted"`
}

func outputFilterJSON(w io.Writer, states []domain.ElementState) error {
	out := make([]elementStateJSON, 0, len(states))
	for _, s := range states {
		out = append(out, elementStateJSON{
			ID:          s.Element.ID,
			Text:        s.Element.Text,
			Visible:     s.Visible,
			Highlighted: s.Highlighted,
		})
	}
	return writeJSON(w, out)
}

func outputFilterTable(w io.Writer, states []domain.ElementState, all bool) error {
	highlight := color.New(color.FgHiYellow, color.Bold)
	hidden := color.New(color.Faint)

	tbl := newTable()
	visible := 0
	for _, s := range states {
		switch {
		case s.Highlighted:
			visible++
			tbl.AddRow(highlight.Sprint("*"), highlight.Sprint(s.Element.Text))
		case s.Visible:
			visible++
			tbl.AddRow("", s.Element.Text)
		case all:
			tbl.AddRow(hidden.Sprint("-"), hidden.Sprint(s.Element.Text))
		}
	}

	if len(tbl.Rows) > 0 {
		if _, err := fmt.Fprintln(w, tbl); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d elements visible\n", visible, len(states))
	return err
}
