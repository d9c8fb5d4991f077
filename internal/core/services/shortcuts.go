package services

import (
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// Ensure ShortcutService implements the interface.
var _ driving.ShortcutService = (*ShortcutService)(nil)

// ShortcutService maps key events to interface actions.
type ShortcutService struct{}

// NewShortcutService creates a new shortcut service.
func NewShortcutService() *ShortcutService {
	return &ShortcutService{}
}

// Resolve returns the action bound to a key event. Ctrl and Cmd are
// interchangeable modifiers.
func (s *ShortcutService) Resolve(ev domain.KeyEvent) domain.Action {
	if ev.Key == "escape" {
		return domain.ActionCloseOverlays
	}
	if !ev.Ctrl && !ev.Meta {
		return domain.ActionNone
	}

	switch ev.Key {
	case "k":
		return domain.ActionFocusSearch
	case "b":
		return domain.ActionToggleSidebar
	case "t":
		return domain.ActionToggleTheme
	default:
		return domain.ActionNone
	}
}
