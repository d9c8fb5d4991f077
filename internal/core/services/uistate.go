package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

// Ensure UIStateService implements the interface.
var _ driving.UIStateService = (*UIStateService)(nil)

// UIStateService owns the page state and persists the parts that survive a
// restart (sidebar collapse and theme) to a key-value store.
type UIStateService struct {
	mu    sync.Mutex
	store driven.KVStore
	state domain.UIState
}

// NewUIStateService creates a UI state service. A non-positive narrowWidth
// uses domain.DefaultNarrowWidth.
func NewUIStateService(store driven.KVStore, narrowWidth int) *UIStateService {
	state := domain.DefaultUIState()
	if narrowWidth > 0 {
		state.NarrowWidth = narrowWidth
	}
	return &UIStateService{
		store: store,
		state: state,
	}
}

// Restore loads persisted values into the state. Read failures leave the
// defaults in place.
func (s *UIStateService) Restore() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.get(domain.KeySidebarCollapsed); ok {
		s.state.SidebarCollapsed = v == "true"
	}
	if v, ok := s.get(domain.KeyTheme); ok {
		if v == string(domain.ThemeDark) {
			s.state.Theme = domain.ThemeDark
		} else {
			s.state.Theme = domain.ThemeLight
		}
	}
	return s.state
}

// State returns a copy of the current state.
func (s *UIStateService) State() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetWidth records the layout width.
func (s *UIStateService) SetWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Width = width
	if !s.state.IsNarrow() {
		s.state.SidebarShown = false
	}
}

// ToggleSidebar flips the collapsed sidebar and persists the choice.
func (s *UIStateService) ToggleSidebar() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarCollapsed = !s.state.SidebarCollapsed
	s.set(domain.KeySidebarCollapsed, fmt.Sprintf("%t", s.state.SidebarCollapsed))
	return s.state
}

// ToggleMobileSidebar flips the overlay sidebar used on narrow layouts.
func (s *UIStateService) ToggleMobileSidebar() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarShown = !s.state.SidebarShown
	return s.state
}

// ClickOutside hides the overlay sidebar on narrow layouts when a click
// lands neither inside the sidebar nor on its toggle.
func (s *UIStateService) ClickOutside(insideSidebar, onToggle bool) domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsNarrow() && !insideSidebar && !onToggle {
		s.state.SidebarShown = false
	}
	return s.state
}

// ToggleTheme switches between light and dark and persists the choice.
func (s *UIStateService) ToggleTheme() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Theme = s.state.Theme.Toggle()
	s.set(domain.KeyTheme, s.state.Theme.String())
	return s.state
}

// SetTheme selects a theme and persists it.
func (s *UIStateService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTheme, theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Theme = theme
	if s.store == nil {
		return nil
	}
	if err := s.store.Set(domain.KeyTheme, theme.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// OpenDropdown opens the dropdown with the given id, closing any other.
// Opening the dropdown that is already open closes it.
func (s *UIStateService) OpenDropdown(id string) domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.OpenDropdown == id {
		s.state.OpenDropdown = ""
	} else {
		s.state.OpenDropdown = id
	}
	return s.state
}

// OpenModal shows the modal and closes any dropdown.
func (s *UIStateService) OpenModal() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.OpenDropdown = ""
	s.state.ModalOpen = true
	return s.state
}

// CloseOverlays closes every dropdown and the modal.
func (s *UIStateService) CloseOverlays() domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.OpenDropdown = ""
	s.state.ModalOpen = false
	return s.state
}

// FocusSearch records whether the search input has focus.
func (s *UIStateService) FocusSearch(focused bool) domain.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchFocused = focused
	return s.state
}

func (s *UIStateService) get(key string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	v, ok, err := s.store.Get(key)
	if err != nil {
		logger.Warn("Failed to read %s: %v", key, err)
		return "", false
	}
	return v, ok
}

// set persists a value. Storage failures are logged and otherwise ignored.
func (s *UIStateService) set(key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, value); err != nil {
		logger.Warn("Failed to save %s: %v", key, err)
	}
}
