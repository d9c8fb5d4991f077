package domain

// DefaultSearchTarget is the selector searched when none is given.
const DefaultSearchTarget = "table"

// SearchOptions configures a search query.
type SearchOptions struct {
	// Target is the selector whose elements are searched.
	Target string

	// Threshold overrides MatchThreshold when greater than zero.
	Threshold float64

	// Limit caps the number of results when greater than zero.
	Limit int
}

// EffectiveThreshold returns the threshold results must exceed.
func (o SearchOptions) EffectiveThreshold() float64 {
	if o.Threshold > 0 {
		return o.Threshold
	}
	return MatchThreshold
}

// SearchResult represents a single ranked search hit.
type SearchResult struct {
	// Element is the matched element.
	Element Element

	// Score is the fuzzy match score in (threshold, 1].
	Score float64
}

// ElementState is the visibility and highlight state of an element after
// a table filter has been applied.
type ElementState struct {
	// Element is the filtered element.
	Element Element

	// Visible reports whether the element stays shown.
	Visible bool

	// Highlighted reports whether the element is marked as a match.
	Highlighted bool
}
