// Package status provides the status line shown under the search results.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// State is what the status line is reporting.
type State string

// Status line states.
const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Bar reports the outcome of the last search on the left and key hints on
// the right. A notice overrides the left side until the next search.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	state     State
	query     string
	count     int
	threshold float64
	err       error
	notice    string
	info      string
}

// NewBar creates an idle status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles:    s,
		keymap:    km,
		width:     80,
		state:     StateIdle,
		threshold: domain.MatchThreshold,
	}
}

// Searching marks a search as running.
func (b *Bar) Searching() {
	b.state = StateSearching
	b.notice = ""
}

// Results records a finished search. A non-positive threshold shows the
// default one.
func (b *Bar) Results(query string, count int, threshold float64) {
	if threshold <= 0 {
		threshold = domain.MatchThreshold
	}
	b.state = StateResults
	b.query = query
	b.count = count
	b.threshold = threshold
	b.err = nil
	b.notice = ""
}

// Failed records a search or page error.
func (b *Bar) Failed(err error) {
	b.state = StateError
	b.err = err
	b.notice = ""
}

// Notice shows a one-off message such as an unavailable action.
func (b *Bar) Notice(msg string) {
	b.notice = msg
}

// SetInfo sets the idle text, usually the page location.
func (b *Bar) SetInfo(info string) {
	b.info = info
}

// Clear returns the bar to idle.
func (b *Bar) Clear() {
	b.state = StateIdle
	b.query = ""
	b.count = 0
	b.err = nil
	b.notice = ""
}

// State returns what the bar is reporting.
func (b *Bar) State() State {
	return b.state
}

// Count returns the number of results of the last search.
func (b *Bar) Count() int {
	return b.count
}

// SetStyles replaces the styles after a theme change.
func (b *Bar) SetStyles(s *styles.Styles) {
	b.styles = s
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the rendered width.
func (b *Bar) Width() int {
	return b.width
}

// View renders the bar.
func (b *Bar) View() string {
	left := b.summary()
	right := b.styles.Muted.Render(hintText(b.hints()))

	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) summary() string {
	if b.notice != "" {
		return b.styles.Warning.Render(b.notice)
	}

	switch b.state {
	case StateSearching:
		return b.styles.Muted.Render("Searching...")
	case StateError:
		if b.err == nil {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.err.Error())
	case StateResults:
		if b.count == 0 {
			return b.styles.Muted.Render(fmt.Sprintf("No matches for %q", b.query))
		}
		noun := "matches"
		if b.count == 1 {
			noun = "match"
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d %s for %q (score > %.2f)",
			b.count, noun, b.query, b.threshold))
	case StateIdle:
	}

	if b.info != "" {
		return b.styles.Muted.Render(b.info)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) hints() []key.Binding {
	if b.state == StateResults && b.count > 0 {
		return b.keymap.ResultsHelp()
	}
	return b.keymap.ShortHelp()
}

func hintText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
