// Package toast renders notifications stacked in a corner of the TUI.
package toast

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// maxVisible bounds how many toasts are drawn at once.
const maxVisible = 3

// icons maps notification icon names to terminal glyphs.
var icons = map[string]string{
	"check-circle":         "✔",
	"exclamation-triangle": "⚠",
	"info-circle":          "ℹ",
}

// Icon returns the glyph for a notification type.
func Icon(t domain.NotificationType) string {
	return icons[t.Icon()]
}

// Render draws the active notifications, newest first. Fading toasts are
// drawn faint. Returns "" when there is nothing to show.
func Render(s *styles.Styles, notes []domain.Notification, now time.Time, width int) string {
	if len(notes) == 0 {
		return ""
	}
	if len(notes) > maxVisible {
		notes = notes[:maxVisible]
	}

	boxWidth := width / 2
	if boxWidth < 24 {
		boxWidth = 24
	}

	boxes := make([]string, 0, len(notes))
	for _, n := range notes {
		style := s.Notification(n.Type)
		if n.Fading(now) {
			style = style.Faint(true)
		}
		box := s.Border.
			BorderForeground(style.GetForeground()).
			Width(boxWidth).
			Padding(0, 1).
			Render(style.Render(Icon(n.Type) + " " + n.Message))
		boxes = append(boxes, box)
	}

	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

// Lines returns the plain text of the notifications, for tests and logs.
func Lines(notes []domain.Notification) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, Icon(n.Type)+" "+n.Message)
	}
	return strings.Join(parts, "\n")
}
