// Package tui provides an interactive terminal user interface for ims.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides fuzzy search and table filtering.
	Search driving.SearchService

	// ResultAction provides actions on search results.
	ResultAction driving.ResultActionService

	// UIState owns sidebar, theme, dropdown and modal state.
	UIState driving.UIStateService

	// Notifications holds the active toasts.
	Notifications driving.NotificationService

	// Forms validates forms and autosaves drafts.
	Forms driving.FormService

	// Shortcuts maps key presses to interface actions.
	Shortcuts driving.ShortcutService

	// Settings provides search, debounce and performance settings.
	Settings driving.SettingsService

	// PageChanges receives a value whenever the page is modified.
	// Nil when the page is not watched.
	PageChanges <-chan struct{}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.UIState == nil {
		return ErrMissingUIStateService
	}
	if p.Notifications == nil {
		return ErrMissingNotificationService
	}
	return nil
}
