// Package export renders a computed Bill into downloadable artifacts. It
// makes no decisions: the Bill is the sole input and every function is a pure
// (Bill, Meta) -> bytes transform.
package export

// Meta carries the presentation fields that accompany a bill into an export.
// Zero values fall back to the supplier placeholders printed on the paper
// bills this replaces.
type Meta struct {
	Customer string
	Month    string
	Supplier string
	Location string
}

func (m Meta) supplierLine() string {
	s := m.Supplier
	if s == "" {
		s = "Milk Supplier"
	}
	if m.Location != "" {
		s += ", " + m.Location
	}
	return s
}
