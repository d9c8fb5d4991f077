// Package search provides the fuzzy search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// ActionsDropdown identifies the result action menu in the UI state.
const ActionsDropdown = "result-actions"

// Result actions.
const (
	ActionCopy   = "Copy text"
	ActionFilter = "Filter table"
	ActionOpen   = "Open page"
	ActionCancel = "Cancel"
)

// Config holds the search parameters used by the view.
type Config struct {
	// Target is the CSS selector searched; empty uses the service default.
	Target string

	// Threshold overrides the match threshold when > 0.
	Threshold float64

	// Limit caps results when > 0.
	Limit int

	// Debounce is the quiet period after a keystroke before searching.
	Debounce time.Duration
}

// ActionMenu represents the dropdown of actions on a result.
type ActionMenu struct {
	actions  []string
	selected int
	result   *domain.SearchResult
}

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	actionService driving.ResultActionService
	uiState       driving.UIStateService
	ctx           context.Context
	config        Config

	lastQuery string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating results
	actionMenu *ActionMenu
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
	uiState driving.UIStateService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s, messages.ViewSearch),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		actionService: actionService,
		uiState:       uiState,
		ctx:           context.Background(),
		config:        Config{Debounce: input.DefaultDebounce},
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithConfig sets the search parameters.
func (v *View) WithConfig(cfg Config) *View {
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	v.config = cfg
	v.input.SetDebounce(cfg.Debounce)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
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
		return v, v.performSearch(v.input.Value(), msg.Seq)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.PageChanged:
		// Re-run the current query against the reloaded page.
		return v, v.performSearch(v.input.Value(), v.input.Bump())

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.Failed(msg.Err)
		return v, nil
	}

	// Forward to input component (cursor blink)
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.MenuOpen() {
		return v.handleActionMenuKey(msg)
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		if v.focusInput {
			// Search now instead of waiting for the debounce
			v.statusbar.Searching()
			return v, v.performSearch(v.input.Value(), v.input.Bump())
		}
		if result := v.list.SelectedResult(); result != nil {
			v.openMenu(result)
		}
		return v, nil

	case tea.KeyDown:
		if v.focusInput && !v.list.IsEmpty() {
			v.focusInput = false
			v.input.Blur()
			v.focusSearch(false)
			return v, nil
		}
		v.list.MoveDown()
		return v, nil

	case tea.KeyUp:
		if !v.focusInput && v.list.Selected() == 0 {
			return v, v.FocusInput()
		}
		v.list.MoveUp()
		return v, nil
	}

	// Typing while navigating returns to the input
	var focusCmd tea.Cmd
	if !v.focusInput {
		focusCmd = v.FocusInput()
	}

	// The input schedules the debounce tick when the query changes.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, tea.Batch(focusCmd, cmd)
}

// handleActionMenuKey processes keyboard input when the action menu is open.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case tea.KeyDown:
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case tea.KeyEnter:
		action := v.actionMenu.actions[v.actionMenu.selected]
		result := v.actionMenu.result
		v.CloseMenu()
		return v.executeAction(action, result)
	default:
	}
	return v, nil
}

// executeAction performs the selected action on a search result.
func (v *View) executeAction(action string, result *domain.SearchResult) (*View, tea.Cmd) {
	if result == nil {
		return v, nil
	}

	switch action {
	case ActionCopy:
		if v.actionService == nil {
			v.statusbar.Notice("Copy not available")
			return v, nil
		}
		if err := v.actionService.CopyToClipboard(v.ctx, result); err != nil {
			return v, notify("Copy failed: "+err.Error(), domain.NotificationError)
		}
		return v, notify("Copied to clipboard", domain.NotificationSuccess)

	case ActionFilter:
		query := v.input.Value()
		return v, func() tea.Msg {
			return messages.FilterRequested{Query: query}
		}

	case ActionOpen:
		if v.actionService == nil {
			v.statusbar.Notice("Open not available")
			return v, nil
		}
		if err := v.actionService.OpenPage(v.ctx); err != nil {
			return v, notify("Open failed: "+err.Error(), domain.NotificationError)
		}
		v.statusbar.Notice("Opening page...")

	case ActionCancel:
	}

	return v, nil
}

func notify(message string, typ domain.NotificationType) tea.Cmd {
	return func() tea.Msg {
		return messages.Notify{Message: message, Type: typ}
	}
}

// performSearch runs a search for query tagged with seq.
func (v *View) performSearch(query string, seq int) tea.Cmd {
	svc := v.searchService
	ctx := v.ctx
	opts := domain.SearchOptions{
		Target:    v.config.Target,
		Threshold: v.config.Threshold,
		Limit:     v.config.Limit,
	}
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Seq: seq, Results: results, Err: err}
	}
}

// handleSearchCompleted processes search results, dropping stale ones.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if !v.input.Current(msg.Seq) {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Failed(msg.Err)
		return
	}

	v.err = nil
	v.lastQuery = msg.Query
	v.list.SetResults(msg.Query, msg.Results)
	v.statusbar.Results(msg.Query, len(msg.Results), v.config.Threshold)
}

func (v *View) openMenu(result *domain.SearchResult) {
	actions := []string{ActionCopy, ActionFilter}
	if v.actionService != nil {
		actions = append(actions, ActionOpen)
	}
	actions = append(actions, ActionCancel)

	v.actionMenu = &ActionMenu{actions: actions, result: result}
	if v.uiState != nil && v.uiState.State().OpenDropdown != ActionsDropdown {
		v.uiState.OpenDropdown(ActionsDropdown)
	}
}

// CloseMenu closes the action menu.
func (v *View) CloseMenu() {
	v.actionMenu = nil
	if v.uiState != nil && v.uiState.State().OpenDropdown == ActionsDropdown {
		v.uiState.OpenDropdown(ActionsDropdown) // toggles closed
	}
}

// MenuOpen reports whether the action menu is showing.
func (v *View) MenuOpen() bool {
	if v.actionMenu == nil {
		return false
	}
	if v.uiState != nil && v.uiState.State().OpenDropdown != ActionsDropdown {
		// Closed from outside, e.g. by Escape
		v.actionMenu = nil
		return false
	}
	return true
}

// FocusInput moves focus to the query input.
func (v *View) FocusInput() tea.Cmd {
	v.focusInput = true
	v.focusSearch(true)
	return v.input.Focus()
}

func (v *View) focusSearch(focused bool) {
	if v.uiState != nil {
		v.uiState.FocusSearch(focused)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Search"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.MenuOpen() {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
			continue
		}
		lines = append(lines, v.styles.Normal.Render("  "+action))
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetStyles replaces the styles, for theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	v.styles = s
	v.input.SetStyles(s)
	v.list.SetStyles(s)
	v.statusbar.SetStyles(s)
}

// SetInfo sets the idle status text.
func (v *View) SetInfo(info string) {
	v.statusbar.SetInfo(info)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Seq returns the latest keystroke sequence number.
func (v *View) Seq() int {
	return v.input.Seq()
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults("", nil)
	v.err = nil
	v.CloseMenu()
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
