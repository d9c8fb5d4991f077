package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, Theme("").Toggle())
}

func TestTheme_IsValid(t *testing.T) {
	assert.True(t, ThemeLight.IsValid())
	assert.True(t, ThemeDark.IsValid())
	assert.False(t, Theme("solarized").IsValid())
	assert.False(t, Theme("").IsValid())
}

func TestDefaultUIState(t *testing.T) {
	s := DefaultUIState()

	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, DefaultNarrowWidth, s.NarrowWidth)
	assert.False(t, s.SidebarCollapsed)
	assert.False(t, s.SidebarShown)
	assert.Empty(t, s.OpenDropdown)
}

func TestUIState_IsNarrow(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected bool
	}{
		{name: "unknown width", width: 0, expected: false},
		{name: "below breakpoint", width: 60, expected: true},
		{name: "at breakpoint", width: 80, expected: true},
		{name: "above breakpoint", width: 81, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultUIState()
			s.Width = tt.width
			assert.Equal(t, tt.expected, s.IsNarrow())
		})
	}
}

func TestAutosaveKey(t *testing.T) {
	assert.Equal(t, "autosave_new-item", AutosaveKey("new-item"))
}
