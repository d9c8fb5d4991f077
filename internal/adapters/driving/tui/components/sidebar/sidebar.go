// Package sidebar provides the navigation sidebar for the TUI.
package sidebar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
)

const (
	// ExpandedWidth is the sidebar width when expanded.
	ExpandedWidth = 20

	// CollapsedWidth is the sidebar width when collapsed to icons.
	CollapsedWidth = 5
)

// Item represents a single navigation entry.
type Item struct {
	Icon  string
	Label string
	View  messages.ViewType
}

// DefaultItems returns the navigation entries.
func DefaultItems() []Item {
	return []Item{
		{Icon: "⌕", Label: "Search", View: messages.ViewSearch},
		{Icon: "▤", Label: "Inventory", View: messages.ViewTable},
		{Icon: "+", Label: "New item", View: messages.ViewForm},
	}
}

// Sidebar renders the navigation entries for the current layout.
type Sidebar struct {
	styles    *styles.Styles
	items     []Item
	active    messages.ViewType
	collapsed bool
	height    int
}

// New creates a sidebar with the default entries.
func New(s *styles.Styles) *Sidebar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Sidebar{
		styles: s,
		items:  DefaultItems(),
		height: 24,
	}
}

// View renders the sidebar.
func (b *Sidebar) View() string {
	width := ExpandedWidth
	if b.collapsed {
		width = CollapsedWidth
	}

	lines := make([]string, 0, len(b.items)+2)
	if b.collapsed {
		lines = append(lines, b.styles.Title.Render("IMS"), "")
	} else {
		lines = append(lines, b.styles.Title.Render("Inventory"), "")
	}

	for _, item := range b.items {
		label := item.Icon + " " + item.Label
		if b.collapsed {
			label = item.Icon
		}
		if item.View == b.active {
			lines = append(lines, b.styles.Selected.Render(label))
			continue
		}
		lines = append(lines, b.styles.Normal.Render(label))
	}

	return b.styles.Sidebar.
		Width(width).
		Height(b.height).
		Render(strings.Join(lines, "\n"))
}

// Width returns the rendered width including the border.
func (b *Sidebar) Width() int {
	return lipgloss.Width(b.View())
}

// Next returns the view after the active one, wrapping around.
func (b *Sidebar) Next() messages.ViewType {
	for i, item := range b.items {
		if item.View == b.active {
			return b.items[(i+1)%len(b.items)].View
		}
	}
	return b.items[0].View
}

// SetActive marks the active view.
func (b *Sidebar) SetActive(v messages.ViewType) {
	b.active = v
}

// Active returns the active view.
func (b *Sidebar) Active() messages.ViewType {
	return b.active
}

// SetCollapsed collapses the sidebar to icons.
func (b *Sidebar) SetCollapsed(collapsed bool) {
	b.collapsed = collapsed
}

// Collapsed reports whether the sidebar shows icons only.
func (b *Sidebar) Collapsed() bool {
	return b.collapsed
}

// SetHeight sets the rendered height.
func (b *Sidebar) SetHeight(height int) {
	b.height = height
}

// SetStyles replaces the styles, for theme changes.
func (b *Sidebar) SetStyles(s *styles.Styles) {
	b.styles = s
}

// Items returns the navigation entries.
func (b *Sidebar) Items() []Item {
	return b.items
}
