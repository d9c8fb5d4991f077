package driving

import (
	"context"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// CopyToClipboard copies the result's text to the system clipboard.
	CopyToClipboard(ctx context.Context, result *domain.SearchResult) error

	// OpenPage opens the page the result came from in the default application.
	OpenPage(ctx context.Context) error
}
