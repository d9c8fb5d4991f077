// Package table provides the filterable inventory table view for the TUI.
package table

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service not available")

const cellSeparator = " │ "

// View is the table view. Rows that do not contain the filter text are
// hidden and matching rows are highlighted.
type View struct {
	styles        *styles.Styles
	searchService driving.SearchService
	ctx           context.Context
	input         *input.QueryInput

	target string

	states       []domain.ElementState
	selected     int // index into the visible rows
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new table view filtering the elements under target.
func NewView(s *styles.Styles, searchService driving.SearchService, target string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := input.NewQueryInput(s, messages.ViewTable)
	in.SetLabel("Filter: ")
	in.SetPlaceholder("Filter rows...")

	return &View{
		styles:        s,
		searchService: searchService,
		ctx:           context.Background(),
		input:         in,
		target:        target,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithDebounce sets the quiet period after a keystroke before filtering.
func (v *View) WithDebounce(d time.Duration) *View {
	v.input.SetDebounce(d)
	return v
}

// Init loads the unfiltered table.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload refilters the table with the current query.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	return v.loadFilter(v.input.Value(), v.input.Bump())
}

// Apply sets the filter query and refilters immediately.
func (v *View) Apply(query string) tea.Cmd {
	v.input.SetValue(query)
	return v.Reload()
}

// loadFilter returns a command that computes row states for query.
func (v *View) loadFilter(query string, seq int) tea.Cmd {
	svc := v.searchService
	ctx := v.ctx
	target := v.target
	return func() tea.Msg {
		if svc == nil {
			return messages.FilterCompleted{Query: query, Seq: seq, Err: ErrNoSearchService}
		}
		states, err := svc.Filter(ctx, query, target)
		return messages.FilterCompleted{Query: query, Seq: seq, States: states, Err: err}
	}
}

// Update handles messages for the table view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		if !v.input.Due(msg) {
			return v, nil
		}
		v.loading = true
		return v, v.loadFilter(v.input.Value(), msg.Seq)

	case messages.FilterCompleted:
		if !v.input.Current(msg.Seq) {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.states = msg.States
		v.selected = 0
		v.scrollOffset = 0
		return v, nil

	case messages.PageChanged:
		return v, v.Reload()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
		return v, nil
	case tea.KeyDown:
		if v.selected < v.VisibleCount()-1 {
			v.selected++
			v.adjustScroll()
		}
		return v, nil
	case tea.KeyEnter:
		return v, v.Reload()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// visible returns the rows currently shown.
func (v *View) visible() []domain.ElementState {
	rows := make([]domain.ElementState, 0, len(v.states))
	for _, s := range v.states {
		if s.Visible {
			rows = append(rows, s)
		}
	}
	return rows
}

// adjustScroll keeps the selected row on screen.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of rows that fit on screen.
func (v *View) visibleItemCount() int {
	// Title, input, footer and padding
	available := v.height - 9
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the table view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	rows := v.visible()

	b.WriteString(v.styles.Title.Render("Inventory"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.loading && len(v.states) == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case len(v.states) == 0:
		b.WriteString(v.styles.Muted.Render("No rows in " + v.targetLabel()))
	case len(rows) == 0:
		b.WriteString(v.styles.Muted.Render("No rows match"))
	default:
		visibleItems := v.visibleItemCount()
		for i := v.scrollOffset; i < len(rows) && i < v.scrollOffset+visibleItems; i++ {
			b.WriteString(v.renderRow(i, &rows[i]))
			b.WriteString("\n")
		}
		if len(rows) > visibleItems {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
				v.scrollOffset+1,
				min(v.scrollOffset+visibleItems, len(rows)),
				len(rows))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d of %d rows visible", len(rows), len(v.states))))

	return b.String()
}

// renderRow renders one visible row.
func (v *View) renderRow(index int, state *domain.ElementState) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	text := state.Element.Text
	if len(state.Element.Cells) > 0 {
		text = strings.Join(state.Element.Cells, cellSeparator)
	}

	maxLen := v.width - 4
	if maxLen < 10 {
		maxLen = 10
	}
	if r := []rune(text); len(r) > maxLen {
		text = string(r[:maxLen-3]) + "..."
	}

	line := indicator + text
	switch {
	case index == v.selected:
		return v.styles.Selected.Render(line)
	case state.Highlighted:
		return v.styles.Highlight.Render(line)
	default:
		return v.styles.Normal.Render(line)
	}
}

func (v *View) targetLabel() string {
	if v.target == "" {
		return domain.DefaultSearchTarget
	}
	return v.target
}

// SetStyles replaces the styles, for theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	v.styles = s
	v.input.SetStyles(s)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Focus focuses the filter input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Query returns the current filter text.
func (v *View) Query() string {
	return v.input.Value()
}

// States returns the state of every row, hidden ones included.
func (v *View) States() []domain.ElementState {
	return v.states
}

// VisibleCount returns the number of rows shown.
func (v *View) VisibleCount() int {
	return len(v.visible())
}

// Selected returns the index of the selected visible row.
func (v *View) Selected() int {
	return v.selected
}

// Seq returns the latest filter sequence number.
func (v *View) Seq() int {
	return v.input.Seq()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
