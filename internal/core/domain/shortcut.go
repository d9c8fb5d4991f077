package domain

import "strings"

// KeyEvent is a keyboard event in a toolkit-neutral form.
type KeyEvent struct {
	// Key is the key name, e.g. "k", "escape", "enter".
	Key string

	Ctrl  bool
	Meta  bool
	Shift bool
}

// ParseKeyEvent converts a key description such as "ctrl+k" or "esc" into a KeyEvent.
func ParseKeyEvent(s string) KeyEvent {
	var ev KeyEvent
	parts := strings.Split(strings.ToLower(s), "+")
	for i, part := range parts {
		if i == len(parts)-1 {
			ev.Key = part
			break
		}
		switch part {
		case "ctrl":
			ev.Ctrl = true
		case "cmd", "meta", "super":
			ev.Meta = true
		case "shift":
			ev.Shift = true
		}
	}
	if ev.Key == "esc" {
		ev.Key = "escape"
	}
	return ev
}

// Action is what a keyboard shortcut asks the interface to do.
type Action int

// Shortcut actions.
const (
	ActionNone Action = iota
	ActionFocusSearch
	ActionCloseOverlays
	ActionToggleSidebar
	ActionToggleTheme
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionFocusSearch:
		return "focus_search"
	case ActionCloseOverlays:
		return "close_overlays"
	case ActionToggleSidebar:
		return "toggle_sidebar"
	case ActionToggleTheme:
		return "toggle_theme"
	default:
		return "none"
	}
}
