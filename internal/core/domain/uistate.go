package domain

// Storage keys for persisted UI state.
const (
	// KeySidebarCollapsed holds "true" when the sidebar is collapsed.
	KeySidebarCollapsed = "sidebarCollapsed"

	// KeyTheme holds the selected theme name.
	KeyTheme = "theme"

	// AutosavePrefix prefixes the key under which a form's draft is stored.
	AutosavePrefix = "autosave_"
)

// DefaultNarrowWidth is the width at or below which the layout is treated
// as narrow and the sidebar behaves as an overlay.
const DefaultNarrowWidth = 80

// Theme is the colour scheme of the interface.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// UIState is the explicit page state handed to render functions.
type UIState struct {
	// SidebarCollapsed is the persisted desktop sidebar state.
	SidebarCollapsed bool

	// SidebarShown is the transient overlay sidebar state used on narrow layouts.
	SidebarShown bool

	// Theme is the active colour scheme.
	Theme Theme

	// Width is the current layout width.
	Width int

	// NarrowWidth is the breakpoint for narrow layouts.
	NarrowWidth int

	// OpenDropdown is the ID of the open dropdown, empty when none is open.
	OpenDropdown string

	// ModalOpen reports whether a modal is showing.
	ModalOpen bool

	// SearchFocused reports whether the search input has focus.
	SearchFocused bool
}

// DefaultUIState returns the state of a fresh page.
func DefaultUIState() UIState {
	return UIState{
		Theme:       ThemeLight,
		NarrowWidth: DefaultNarrowWidth,
	}
}

// IsNarrow reports whether the layout is at or below the narrow breakpoint.
func (s UIState) IsNarrow() bool {
	return s.Width > 0 && s.Width <= s.NarrowWidth
}

// AutosaveKey returns the storage key for a form's autosaved draft.
func AutosaveKey(formID string) string {
	return AutosavePrefix + formID
}
