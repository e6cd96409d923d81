// Package transform renders a model.Document to an HTML body fragment.
//
// Rendering is a single forward pass: each paragraph goes through the
// paragraph renderer, each table is classified into a Role and rendered with
// that role's template, and a Walker brackets consecutive list items. The
// pass performs no I/O and is deterministic.
package transform

import (
	"log/slog"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// PipelineOptions configures the renderer
type PipelineOptions struct {
	// Palette maps fills to classes (default: palette.Default())
	Palette *palette.Palette

	// GotRightCaption replaces the got-right-header caption
	GotRightCaption string

	// Logger receives a debug record per classified table
	Logger *slog.Logger

	// OnTableClassified is called with the table's position among the
	// document's tables and its assigned role
	OnTableClassified func(index int, shape Shape, role Role)
}

// Pipeline renders documents
type Pipeline struct {
	options *PipelineOptions
	tables  *tableRenderer
}

// NewPipeline creates a new rendering pipeline
func NewPipeline(opts *PipelineOptions) *Pipeline {
	o := PipelineOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Palette == nil {
		o.Palette = palette.Default()
	}
	if o.GotRightCaption == "" {
		o.GotRightCaption = DefaultGotRightCaption
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return &Pipeline{
		options: &o,
		tables: &tableRenderer{
			palette:         o.Palette,
			gotRightCaption: o.GotRightCaption,
		},
	}
}

// Transform renders the document body
func (p *Pipeline) Transform(doc *model.Document) string {
	var w Walker
	if doc == nil {
		return w.Finish()
	}

	tableIndex := 0
	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case *model.Paragraph:
			w.Add(p.Paragraph(blk))
		case *model.Table:
			w.AddTable(p.table(tableIndex, blk))
			tableIndex++
		}
	}
	return w.Finish()
}

// Paragraph renders a single paragraph
func (p *Pipeline) Paragraph(para *model.Paragraph) Fragment {
	return renderParagraph(para, p.options.Palette)
}

// Table classifies and renders a single table
func (p *Pipeline) Table(t *model.Table) string {
	return p.table(0, t)
}

func (p *Pipeline) table(index int, t *model.Table) string {
	shape := ShapeOf(t)
	role := Classify(shape)

	p.options.Logger.Debug("table classified",
		"index", index,
		"rows", shape.Rows,
		"cols", shape.Cols,
		"fill", shape.Fill.Hex(),
		"role", string(role))
	if p.options.OnTableClassified != nil {
		p.options.OnTableClassified(index, shape, role)
	}

	return p.tables.render(role, t)
}
