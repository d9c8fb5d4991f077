// Package input provides the debounced query input shared by the search
// and table views.
package input

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
)

// DefaultDebounce is the quiet period used until SetDebounce is called.
const DefaultDebounce = 300 * time.Millisecond

// minInputWidth keeps the field usable on narrow layouts.
const minInputWidth = 20

// QueryInput is a labelled text input that numbers its edits. Every edit
// bumps a sequence number and schedules a messages.DebounceElapsed tick
// carrying it; only the tick with the latest number is Due.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int

	view  messages.ViewType
	delay time.Duration
	seq   int
}

// NewQueryInput creates a focused input whose ticks are addressed to view.
func NewQueryInput(s *styles.Styles, view messages.ViewType) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search inventory..."
	ti.CharLimit = 256
	ti.Focus()

	q := &QueryInput{
		textinput: ti,
		styles:    s,
		label:     "Search: ",
		view:      view,
		delay:     DefaultDebounce,
	}
	q.SetWidth(50)
	return q
}

// Init starts the cursor blink.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the text input. When the value changes the edit is
// numbered and a debounce tick is scheduled.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	before := q.textinput.Value()

	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	if q.textinput.Value() == before {
		return q, cmd
	}
	return q, tea.Batch(cmd, q.schedule())
}

// schedule bumps the sequence and returns the tick for it. A zero delay
// delivers the tick immediately.
func (q *QueryInput) schedule() tea.Cmd {
	seq := q.Bump()
	elapsed := messages.DebounceElapsed{View: q.view, Seq: seq}
	if q.delay == 0 {
		return func() tea.Msg { return elapsed }
	}
	return tea.Tick(q.delay, func(time.Time) tea.Msg { return elapsed })
}

// Bump invalidates pending ticks and returns the new sequence number. Views
// call it before running a query immediately.
func (q *QueryInput) Bump() int {
	q.seq++
	return q.seq
}

// Seq returns the latest sequence number.
func (q *QueryInput) Seq() int {
	return q.seq
}

// Due reports whether msg is the latest tick for this input.
func (q *QueryInput) Due(msg messages.DebounceElapsed) bool {
	return msg.View == q.view && msg.Seq == q.seq
}

// Current reports whether seq is still the latest edit, so results
// tagged with an older number can be dropped.
func (q *QueryInput) Current(seq int) bool {
	return seq == q.seq
}

// SetDebounce sets the quiet period. Negative values become zero.
func (q *QueryInput) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	q.delay = d
}

// Debounce returns the quiet period.
func (q *QueryInput) Debounce() time.Duration {
	return q.delay
}

// View renders the label and input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label)
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetLabel sets the text shown before the input.
func (q *QueryInput) SetLabel(label string) {
	q.label = label
	q.SetWidth(q.width)
}

// SetPlaceholder sets the placeholder text.
func (q *QueryInput) SetPlaceholder(placeholder string) {
	q.textinput.Placeholder = placeholder
}

// SetStyles replaces the styles after a theme change.
func (q *QueryInput) SetStyles(s *styles.Styles) {
	q.styles = s
}

// Value returns the query.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue replaces the query without scheduling a tick.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Focus focuses the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused reports whether the input has focus.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the total width, label and border included.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.textinput.Width = max(width-lipgloss.Width(q.label)-6, minInputWidth)
}

// Width returns the total width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the query and invalidates pending ticks.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
	q.Bump()
}
