// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// ResultList displays ranked search results in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	query    string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
// Only arrow keys move the cursor; letters belong to the search input.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		if r.query == "" {
			return r.styles.Muted.Render("Type to search")
		}
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	// One line per result
	visibleCount := r.height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single result with its matched characters emphasised.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTextLen := r.width - 12
	if maxTextLen < 10 {
		maxTextLen = 10
	}
	text := truncate(result.Element.Text, maxTextLen)
	score := fmt.Sprintf("%.2f", result.Score)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTextLen, text, score))
	}

	padding := maxTextLen - len([]rune(text))
	if padding < 0 {
		padding = 0
	}
	return indicator + r.emphasise(text) + strings.Repeat(" ", padding) + "  " + r.styles.Muted.Render(score)
}

// emphasise renders the characters the query matched in text.
func (r *ResultList) emphasise(text string) string {
	positions := domain.MatchPositions(r.query, text)
	if len(positions) == 0 {
		return r.styles.Normal.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, ch := range []rune(text) {
		if matched[i] {
			b.WriteString(r.styles.Title.Render(string(ch)))
			continue
		}
		b.WriteString(r.styles.Normal.Render(string(ch)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetResults updates the result list for query.
func (r *ResultList) SetResults(query string, results []domain.SearchResult) {
	r.query = query
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetStyles replaces the styles, for theme changes.
func (r *ResultList) SetStyles(s *styles.Styles) {
	r.styles = s
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
