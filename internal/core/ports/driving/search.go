package driving

import (
	"context"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// SearchService provides fuzzy search over page elements to external actors.
type SearchService interface {
	// Search ranks the target's elements against query. Results score above
	// the threshold and are sorted by descending score, ties in document order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Filter computes the visibility and highlight state of the target's
	// elements for a plain substring table filter.
	Filter(ctx context.Context, query, target string) ([]domain.ElementState, error)

	// Score rates a single candidate against query.
	Score(query, candidate string) float64
}
