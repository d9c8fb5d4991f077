package driven

import (
	"context"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// ElementSource provides the searchable elements of a rendered page.
type ElementSource interface {
	// Elements returns the row, card and list-item elements inside the
	// elements matched by the target selector, in document order.
	// Returns domain.ErrTargetNotFound when target matches nothing.
	Elements(ctx context.Context, target string) ([]domain.Element, error)

	// Location returns the page path or URL.
	Location() string
}

// PageWatcher notifies when the page behind an ElementSource changes.
type PageWatcher interface {
	// Watch emits a value after each (coalesced) change until ctx is done.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
