// Package domain defines the core entities for the IMS console.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Element: A searchable piece of a rendered page (table row, card, list item)
//   - SearchResult: An element paired with its fuzzy match score
//   - UIState: The explicit page state (sidebar, theme, overlays)
//   - Notification: A transient toast message
//   - Form: A set of fields with validation and autosave behaviour
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
