package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

func TestThemes_AllColoursSet(t *testing.T) {
	for name, theme := range map[string]*Theme{"dark": DarkTheme(), "light": LightTheme()} {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, theme)
			for _, c := range []lipgloss.Color{
				theme.Primary, theme.Secondary, theme.Background, theme.Foreground,
				theme.Muted, theme.Success, theme.Warning, theme.Error, theme.Info,
				theme.Highlight, theme.Border, theme.Bar,
			} {
				assert.NotEmpty(t, string(c))
			}
		})
	}
}

func TestThemes_StatusColoursAreDistinct(t *testing.T) {
	for _, theme := range []*Theme{DarkTheme(), LightTheme()} {
		seen := make(map[string]bool)
		for _, c := range []lipgloss.Color{theme.Primary, theme.Success, theme.Warning, theme.Error, theme.Info} {
			assert.False(t, seen[string(c)], "duplicate colour: %s", c)
			seen[string(c)] = true
		}
	}
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, DarkTheme(), ThemeFor(domain.ThemeDark))
	assert.Equal(t, LightTheme(), ThemeFor(domain.ThemeLight))
	assert.Equal(t, LightTheme(), ThemeFor(domain.Theme("sepia")))
	assert.NotEqual(t, DarkTheme().Background, LightTheme().Background)
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DarkTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.Equal(t, DefaultTheme(), styles.Theme())
}

func TestForTheme(t *testing.T) {
	assert.Equal(t, DarkTheme(), ForTheme(domain.ThemeDark).Theme())
}

func TestStyles_Notification(t *testing.T) {
	s := NewStyles(DarkTheme())

	tests := []struct {
		typ  domain.NotificationType
		want lipgloss.TerminalColor
	}{
		{domain.NotificationSuccess, s.theme.Success},
		{domain.NotificationError, s.theme.Error},
		{domain.NotificationDanger, s.theme.Error},
		{domain.NotificationWarning, s.theme.Warning},
		{domain.NotificationInfo, s.theme.Info},
		{domain.NotificationType("other"), s.theme.Info},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Notification(tt.typ).GetForeground())
		})
	}
}

func TestStyles_RenderDoesNotPanic(t *testing.T) {
	s := DefaultStyles()
	assert.NotPanics(t, func() {
		_ = s.Title.Render("Inventory")
		_ = s.Highlight.Render("Hex bolt")
		_ = s.InvalidField.Render("")
		_ = s.Sidebar.Render("Search")
		_ = s.Modal.Render("Help")
	})
}
