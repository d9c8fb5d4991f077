package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyEvent(t *testing.T) {
	tests := []struct {
		input    string
		expected KeyEvent
	}{
		{"k", KeyEvent{Key: "k"}},
		{"ctrl+k", KeyEvent{Key: "k", Ctrl: true}},
		{"cmd+k", KeyEvent{Key: "k", Meta: true}},
		{"Ctrl+Shift+K", KeyEvent{Key: "k", Ctrl: true, Shift: true}},
		{"esc", KeyEvent{Key: "escape"}},
		{"escape", KeyEvent{Key: "escape"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKeyEvent(tt.input))
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "none", ActionNone.String())
	assert.Equal(t, "focus_search", ActionFocusSearch.String())
	assert.Equal(t, "close_overlays", ActionCloseOverlays.String())
	assert.Equal(t, "toggle_sidebar", ActionToggleSidebar.String())
	assert.Equal(t, "toggle_theme", ActionToggleTheme.String())
}
