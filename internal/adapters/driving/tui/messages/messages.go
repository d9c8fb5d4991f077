// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the fuzzy search view.
	ViewSearch ViewType = iota
	// ViewTable is the table filter view.
	ViewTable
	// ViewForm is the new stock item form.
	ViewForm
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewTable:
		return "table"
	case ViewForm:
		return "form"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DebounceElapsed is the tick scheduled after a query change. Seq numbers
// keystrokes; only the tick carrying the latest Seq runs a search.
type DebounceElapsed struct {
	View ViewType
	Seq  int
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Seq     int
	Results []domain.SearchResult
	Err     error
}

// FilterCompleted carries table filter state back to the model.
type FilterCompleted struct {
	Query  string
	Seq    int
	States []domain.ElementState
	Err    error
}

// FilterRequested asks the table view to filter for Query.
type FilterRequested struct {
	Query string
}

// PageChanged signals that the watched page was modified.
type PageChanged struct{}

// PageWatchStopped signals that the page watcher closed its channel.
type PageWatchStopped struct{}

// Notify asks the app to raise a toast.
type Notify struct {
	Message string
	Type    domain.NotificationType
}

// NotificationTick drives toast fading and expiry.
type NotificationTick struct{}

// FormSubmitted carries the outcome of processing a valid form.
type FormSubmitted struct {
	FormID string
	Values map[string]string
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// FirstFrame is sent once when the first frame is ready, to measure load time.
type FirstFrame struct{}

// Quit signals the application should exit.
type Quit struct{}
