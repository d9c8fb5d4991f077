package driving

import "github.com/custodia-labs/ims-cli/internal/core/domain"

// ShortcutService maps keyboard events to interface actions.
type ShortcutService interface {
	// Resolve returns the action bound to ev, or domain.ActionNone.
	Resolve(ev domain.KeyEvent) domain.Action
}
