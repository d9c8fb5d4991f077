package driving

import "github.com/custodia-labs/ims-cli/internal/core/domain"

// UIStateService owns the explicit page state.
type UIStateService interface {
	// Restore loads persisted sidebar and theme state.
	Restore() domain.UIState

	// State returns a copy of the current state.
	State() domain.UIState

	// SetWidth records the current layout width.
	SetWidth(width int)

	// ToggleSidebar collapses or expands the sidebar and persists the choice.
	ToggleSidebar() domain.UIState

	// ToggleMobileSidebar shows or hides the overlay sidebar on narrow layouts.
	ToggleMobileSidebar() domain.UIState

	// ClickOutside hides the overlay sidebar on narrow layouts when a click
	// lands outside both the sidebar and its toggle.
	ClickOutside(insideSidebar, onToggle bool) domain.UIState

	// ToggleTheme switches between light and dark and persists the choice.
	ToggleTheme() domain.UIState

	// SetTheme selects a theme and persists it.
	SetTheme(theme domain.Theme) error

	// OpenDropdown opens the dropdown with id and closes every other one.
	// Opening the already open dropdown closes it.
	OpenDropdown(id string) domain.UIState

	// OpenModal marks a modal as showing.
	OpenModal() domain.UIState

	// CloseOverlays closes all dropdowns and modals.
	CloseOverlays() domain.UIState

	// FocusSearch marks the search input as focused.
	FocusSearch(focused bool) domain.UIState
}
