// Package model contains the read-only document view consumed by the renderer.
//
// A Document is an ordered list of body blocks, each either a *Paragraph or a
// *Table. Presentation metadata that may be missing in the source document
// (shading, font colour, bold/italic flags) is carried as explicit optional
// values so that absence is a normal case rather than an error.
package model

import "strings"

// Color is a normalized hex color: uppercase, no leading '#'.
// The zero value NoColor means the attribute was absent or meaningless.
type Color string

// NoColor marks an absent color.
const NoColor Color = ""

// IsSet reports whether a color is present
func (c Color) IsSet() bool {
	return c != NoColor
}

// Hex returns the uppercase hex string, or "" when absent
func (c Color) Hex() string {
	return string(c)
}

// NormalizeColor converts a raw attribute value to a Color.
// "auto", "none" and the empty string are treated as absence.
func NormalizeColor(raw string) Color {
	v := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#")))
	switch v {
	case "", "AUTO", "NONE":
		return NoColor
	}
	return Color(v)
}

// Toggle is a tri-state on/off property. Unset behaves like Off.
type Toggle int

const (
	Unset Toggle = iota
	On
	Off
)

// IsOn reports whether the property is explicitly enabled
func (t Toggle) IsOn() bool {
	return t == On
}

// ToggleOf converts an explicit boolean to a Toggle
func ToggleOf(v bool) Toggle {
	if v {
		return On
	}
	return Off
}

// Kind identifies the variant of a body block
type Kind int

const (
	KindParagraph Kind = iota
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Block is one top-level body element: *Paragraph or *Table
type Block interface {
	Kind() Kind
}

// Document is the ordered body of a word-processing document
type Document struct {
	Blocks []Block
}

// Run is a span of text sharing one set of formatting attributes
type Run struct {
	Text   string
	Bold   Toggle
	Italic Toggle
	Color  Color
}

// Paragraph is a body or cell paragraph
type Paragraph struct {
	Runs []Run

	// Style is the resolved display name of the paragraph style (e.g. "Heading 1").
	// An empty style behaves exactly like an unrecognized one.
	Style string

	Shading Color
}

// Kind implements Block
func (p *Paragraph) Kind() Kind { return KindParagraph }

// Text returns the plain text of all runs
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Cell is a table cell
type Cell struct {
	Paragraphs []Paragraph
	Shading    Color

	// Span is the number of grid columns the cell covers (gridSpan)
	Span int
}

// Text returns the cell paragraphs joined by newlines, trimmed
func (c Cell) Text() string {
	lines := make([]string, len(c.Paragraphs))
	for i := range c.Paragraphs {
		lines[i] = c.Paragraphs[i].Text()
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ColSpan returns the grid span, at least 1
func (c Cell) ColSpan() int {
	if c.Span < 1 {
		return 1
	}
	return c.Span
}

// Row is a table row
type Row struct {
	Cells []Cell
}

// Cell returns the cell at position i, or an empty unshaded cell when the
// row is shorter than i+1 (merged or missing cells).
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

// Table is a body table
type Table struct {
	// Columns is the declared column count from the table grid
	Columns int
	Rows    []Row
}

// Kind implements Block
func (t *Table) Kind() Kind { return KindTable }

// FirstCell returns the top-left cell, or an empty cell for an empty table
func (t *Table) FirstCell() Cell {
	if len(t.Rows) == 0 {
		return Cell{}
	}
	return t.Rows[0].Cell(0)
}
