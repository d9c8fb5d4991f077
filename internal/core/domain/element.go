package domain

// ElementKind identifies the shape of a searchable page element.
type ElementKind string

// Searchable element kinds. They correspond to the "tr, .card, .list-item"
// selector applied inside a search target.
const (
	// KindRow is a table row.
	KindRow ElementKind = "row"

	// KindCard is a card block.
	KindCard ElementKind = "card"

	// KindListItem is an entry in a list.
	KindListItem ElementKind = "list-item"
)

// String returns the string representation.
func (k ElementKind) String() string {
	return string(k)
}

// Element is a searchable piece of a rendered page.
type Element struct {
	// ID is the element's id attribute, or a generated "<target>#<index>" reference.
	ID string

	// Kind is the element shape.
	Kind ElementKind

	// Text is the element's visible text content.
	Text string

	// Index is the element's position in document order within its target.
	Index int

	// Cells holds the text of each cell when the element is a table row.
	Cells []string
}
