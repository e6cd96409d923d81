package transform

import "strings"

// List container markup
const (
	ListOpenTag  = "<ul>"
	ListCloseTag = "</ul>"
)

// ListState records whether a list container is open
type ListState int

const (
	ListClosed ListState = iota
	ListOpen
)

func (s ListState) String() string {
	if s == ListOpen {
		return "open"
	}
	return "closed"
}

// Walker accumulates body fragments in document order and brackets each run
// of consecutive list items with exactly one list container
type Walker struct {
	state ListState
	parts []string
}

// State returns the current list state
func (w *Walker) State() ListState {
	return w.state
}

// Open enters ListOpen, emitting the container start if needed
func (w *Walker) Open() {
	if w.state == ListClosed {
		w.parts = append(w.parts, ListOpenTag)
		w.state = ListOpen
	}
}

// Close enters ListClosed, emitting the container end if needed
func (w *Walker) Close() {
	if w.state == ListOpen {
		w.parts = append(w.parts, ListCloseTag)
		w.state = ListClosed
	}
}

// Add appends a rendered paragraph. A blank paragraph only ends an open list.
func (w *Walker) Add(f Fragment) {
	switch f.Kind {
	case FragmentNone:
		w.Close()
	case FragmentListItem:
		w.Open()
		w.parts = append(w.parts, f.HTML)
	default:
		w.Close()
		w.parts = append(w.parts, f.HTML)
	}
}

// AddTable appends a rendered table, ending any open list first
func (w *Walker) AddTable(s string) {
	w.Add(block(s))
}

// Finish closes an open list and returns the body fragments joined by newlines
func (w *Walker) Finish() string {
	w.Close()
	return strings.Join(w.parts, "\n")
}
