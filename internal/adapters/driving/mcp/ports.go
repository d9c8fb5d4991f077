package mcp

import (
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides fuzzy search, filtering and scoring.
	Search driving.SearchService

	// Settings exposes the current configuration.
	Settings driving.SettingsService

	// UIState exposes the persisted interface state.
	UIState driving.UIStateService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Settings and UIState are optional
	return nil
}
