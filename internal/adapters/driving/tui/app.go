package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/sidebar"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/components/toast"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/views/table"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// notificationTick is how often toasts are refreshed for fading and expiry.
const notificationTick = 100 * time.Millisecond

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the styles of the active theme.
	styles *styles.Styles

	keymap *keymap.KeyMap
	help   help.Model

	sidebar    *sidebar.Sidebar
	searchView *search.View
	tableView  *table.View
	formView   *form.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// state is the last UI state returned by the UI state service.
	state domain.UIState

	settings domain.AppSettings

	// started is when the app was created, for the slow load warning.
	started time.Time
	now     func() time.Time

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Persisted sidebar and theme state is restored here.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("Failed to load settings, using defaults: %v", err)
		} else if loaded != nil {
			settings = *loaded
		}
	}

	state := ports.UIState.Restore()
	s := styles.ForTheme(state.Theme)
	km := keymap.DefaultKeyMap()

	bar := sidebar.New(s)
	bar.SetCollapsed(state.SidebarCollapsed)

	searchView := search.NewView(s, km, ports.Search, ports.ResultAction, ports.UIState).
		WithConfig(search.Config{
			Target:    settings.Page.Target,
			Threshold: settings.Search.Threshold,
			Limit:     settings.Search.Limit,
			Debounce:  settings.Search.Debounce,
		})
	tableView := table.NewView(s, ports.Search, settings.Page.Target).
		WithDebounce(settings.Search.Debounce)
	formView := form.NewView(s, ports.Forms, nil)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		sidebar:     bar,
		searchView:  searchView,
		tableView:   tableView,
		formView:    formView,
		currentView: messages.ViewSearch,
		state:       state,
		settings:    settings,
		started:     time.Now(),
		now:         time.Now,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.tableView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ims - Inventory"),
		a.searchView.Init(),
		a.tableView.Init(),
		a.formView.Init(),
		tickNotifications(),
		waitForPageChange(a.ports.PageChanges),
	)
}

func tickNotifications() tea.Cmd {
	return tea.Tick(notificationTick, func(time.Time) tea.Msg {
		return messages.NotificationTick{}
	})
}

// waitForPageChange blocks on the page watcher channel.
func waitForPageChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return messages.PageWatchStopped{}
		}
		return messages.PageChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !a.ready
		a.resize(msg.Width, msg.Height)
		if first {
			return a, func() tea.Msg { return messages.FirstFrame{} }
		}
		return a, nil

	case messages.FirstFrame:
		a.reportLoadTime()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.NotificationTick:
		// Prunes expired toasts
		a.ports.Notifications.Active(a.now())
		return a, tickNotifications()

	case messages.Notify:
		a.ports.Notifications.Notify(msg.Message, msg.Type, 0)
		return a, nil

	case messages.PageChanged:
		logger.Debug("Page changed, reloading")
		var searchCmd, tableCmd tea.Cmd
		a.searchView, searchCmd = a.searchView.Update(msg)
		a.tableView, tableCmd = a.tableView.Update(msg)
		return a, tea.Batch(searchCmd, tableCmd, waitForPageChange(a.ports.PageChanges))

	case messages.PageWatchStopped:
		logger.Debug("Page watcher stopped")
		return a, nil

	case messages.FilterRequested:
		a.setView(messages.ViewTable)
		return a, tea.Batch(a.tableView.Apply(msg.Query), a.tableView.Focus())

	case messages.ViewChanged:
		return a, a.setView(msg.View)

	case messages.DebounceElapsed:
		switch msg.View {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewTable:
			a.tableView, cmd = a.tableView.Update(msg)
		case messages.ViewForm:
		}
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.FilterCompleted:
		a.tableView, cmd = a.tableView.Update(msg)
		return a, cmd

	case messages.FormSubmitted:
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.forward(msg)
}

// handleKeyMsg resolves global shortcuts before forwarding keys to the view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Global quit with ctrl+c
	if keymap.Matches(keyStr, a.keymap.Quit) {
		if a.ports.Forms != nil {
			a.ports.Forms.Flush()
		}
		return a, tea.Quit
	}

	if keymap.Matches(keyStr, a.keymap.Help) {
		if a.state.ModalOpen {
			a.state = a.ports.UIState.CloseOverlays()
		} else {
			a.state = a.ports.UIState.OpenModal()
		}
		return a, nil
	}

	action := domain.ActionNone
	if a.ports.Shortcuts != nil {
		action = a.ports.Shortcuts.Resolve(domain.ParseKeyEvent(keyStr))
	}

	switch action {
	case domain.ActionFocusSearch:
		a.state = a.ports.UIState.CloseOverlays()
		cmd := a.setView(messages.ViewSearch)
		a.state = a.ports.UIState.State()
		return a, cmd

	case domain.ActionCloseOverlays:
		a.state = a.ports.UIState.CloseOverlays()
		if a.state.IsNarrow() && a.state.SidebarShown {
			a.state = a.ports.UIState.ClickOutside(false, false)
		}
		a.searchView.CloseMenu()
		return a, nil

	case domain.ActionToggleSidebar:
		if a.state.IsNarrow() {
			a.state = a.ports.UIState.ToggleMobileSidebar()
		} else {
			a.state = a.ports.UIState.ToggleSidebar()
		}
		a.sidebar.SetCollapsed(a.state.SidebarCollapsed)
		a.layout()
		return a, nil

	case domain.ActionToggleTheme:
		a.state = a.ports.UIState.ToggleTheme()
		a.applyTheme(a.state.Theme)
		return a, nil

	case domain.ActionNone:
	}

	// The help modal swallows everything else
	if a.state.ModalOpen {
		return a, nil
	}

	if keymap.Matches(keyStr, a.keymap.NextView) {
		return a, a.setView(a.sidebar.Next())
	}

	return a, a.forward(msg)
}

// forward sends msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.state = a.ports.UIState.State()
	case messages.ViewTable:
		a.tableView, cmd = a.tableView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	}
	return cmd
}

// setView switches the active view. On narrow layouts the overlay sidebar
// is hidden after navigating.
func (a *App) setView(v messages.ViewType) tea.Cmd {
	if a.currentView == messages.ViewSearch && v != messages.ViewSearch {
		a.searchView.CloseMenu()
		a.state = a.ports.UIState.FocusSearch(false)
	}
	a.currentView = v
	a.sidebar.SetActive(v)
	if a.state.IsNarrow() && a.state.SidebarShown {
		a.state = a.ports.UIState.ToggleMobileSidebar()
		a.layout()
	}

	switch v {
	case messages.ViewSearch:
		return a.searchView.FocusInput()
	case messages.ViewTable:
		return a.tableView.Focus()
	case messages.ViewForm:
	}
	return nil
}

// reportLoadTime logs a warning when the first frame took longer than the
// configured threshold.
func (a *App) reportLoadTime() {
	elapsed := a.now().Sub(a.started)
	threshold := a.settings.Perf.SlowLoad
	logger.Debug("First frame after %d ms", elapsed.Milliseconds())
	if threshold > 0 && elapsed > threshold {
		logger.Warn("Page load time is slow: %d ms", elapsed.Milliseconds())
	}
}

// resize records the terminal size and lays the views out.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.ports.UIState.SetWidth(width)
	a.state = a.ports.UIState.State()
	a.layout()
}

// layout sizes the views to the space beside the sidebar.
func (a *App) layout() {
	if !a.ready {
		return
	}
	contentWidth := a.width
	if a.sidebarVisible() {
		contentWidth -= a.sidebar.Width()
	}
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := a.height - 2 // hints line and spacing
	if contentHeight < 5 {
		contentHeight = 5
	}

	a.sidebar.SetHeight(contentHeight)
	a.searchView.SetDimensions(contentWidth, contentHeight)
	a.tableView.SetDimensions(contentWidth, contentHeight)
	a.formView.SetDimensions(contentWidth, contentHeight)
}

// sidebarVisible reports whether the sidebar is drawn. Narrow layouts only
// show it as an overlay after it was toggled open.
func (a *App) sidebarVisible() bool {
	if a.state.IsNarrow() {
		return a.state.SidebarShown
	}
	return true
}

// applyTheme restyles every component.
func (a *App) applyTheme(theme domain.Theme) {
	a.styles = styles.ForTheme(theme)
	a.sidebar.SetStyles(a.styles)
	a.searchView.SetStyles(a.styles)
	a.tableView.SetStyles(a.styles)
	a.formView.SetStyles(a.styles)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var content string
	switch a.currentView {
	case messages.ViewTable:
		content = a.tableView.View()
	case messages.ViewForm:
		content = a.formView.View()
	default:
		content = a.searchView.View()
	}

	body := content
	if a.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), content)
	}
	if a.state.ModalOpen {
		body = lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, a.viewHelp())
	}

	sections := []string{body}

	now := a.now()
	if toasts := toast.Render(a.styles, a.ports.Notifications.Active(now), now, a.width); toasts != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(a.width, lipgloss.Right, toasts))
	}

	sections = append(sections, a.help.ShortHelpView(a.hints()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// hints returns the key bindings shown at the bottom for the active view.
func (a *App) hints() []key.Binding {
	switch {
	case a.state.ModalOpen:
		return []key.Binding{a.keymap.Help, a.keymap.Close}
	case a.currentView == messages.ViewForm:
		return a.keymap.FormHelp()
	case a.currentView == messages.ViewSearch && !a.searchView.InputFocused():
		return a.keymap.ResultsHelp()
	default:
		return a.keymap.ShortHelp()
	}
}

// viewHelp renders the keyboard shortcut modal.
func (a *App) viewHelp() string {
	title := a.styles.Title.Render("Keyboard shortcuts")
	body := a.help.FullHelpView(a.keymap.FullHelp())
	return a.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// State returns the last UI state seen by the app.
func (a *App) State() domain.UIState {
	return a.state
}

// Styles returns the styles of the active theme.
func (a *App) Styles() *styles.Styles {
	return a.styles
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.resize(width, height)
}
