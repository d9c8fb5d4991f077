package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

func TestShortcutService_Resolve(t *testing.T) {
	svc := NewShortcutService()

	tests := []struct {
		key  string
		want domain.Action
	}{
		{"ctrl+k", domain.ActionFocusSearch},
		{"cmd+k", domain.ActionFocusSearch},
		{"meta+K", domain.ActionFocusSearch},
		{"k", domain.ActionNone},
		{"esc", domain.ActionCloseOverlays},
		{"escape", domain.ActionCloseOverlays},
		{"ctrl+b", domain.ActionToggleSidebar},
		{"ctrl+t", domain.ActionToggleTheme},
		{"ctrl+x", domain.ActionNone},
		{"shift+k", domain.ActionNone},
		{"enter", domain.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Resolve(domain.ParseKeyEvent(tt.key)))
		})
	}
}
