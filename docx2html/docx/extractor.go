package docx

import (
	"fmt"

	"github.com/tenebris-tech/x2html/docx2html/model"
)

// Extractor converts parsed DOCX content to the renderer's document model
type Extractor struct {
	parser *Parser
	styles *Styles
}

// NewExtractor creates a new document extractor
func NewExtractor(parser *Parser) (*Extractor, error) {
	styles, err := parser.GetStyles()
	if err != nil {
		return nil, fmt.Errorf("getting styles: %w", err)
	}

	return &Extractor{
		parser: parser,
		styles: styles,
	}, nil
}

// GetStyles returns the parsed styles
func (e *Extractor) GetStyles() *Styles {
	return e.styles
}

// Extract converts the DOCX body into a model.Document, preserving the
// order of paragraphs and tables
func (e *Extractor) Extract() (*model.Document, error) {
	doc, err := e.parser.GetDocument()
	if err != nil {
		return nil, err
	}

	out := &model.Document{
		Blocks: make([]model.Block, 0, len(doc.Body.Blocks)),
	}
	for _, el := range doc.Body.Blocks {
		switch b := el.(type) {
		case *Paragraph:
			out.Blocks = append(out.Blocks, e.paragraph(b))
		case *Table:
			out.Blocks = append(out.Blocks, e.table(b))
		}
	}
	return out, nil
}

func (e *Extractor) paragraph(p *Paragraph) *model.Paragraph {
	styleID := ""
	if p.Properties != nil && p.Properties.Style != nil {
		styleID = p.Properties.Style.Val
	}

	para := &model.Paragraph{
		Style:   e.styles.ParagraphStyleName(styleID),
		Shading: ParagraphShading(p),
		Runs:    make([]model.Run, 0, len(p.Runs)),
	}
	for i := range p.Runs {
		r := &p.Runs[i]
		para.Runs = append(para.Runs, model.Run{
			Text:   r.Content,
			Bold:   RunBold(r),
			Italic: RunItalic(r),
			Color:  RunColor(r),
		})
	}
	return para
}

func (e *Extractor) table(t *Table) *model.Table {
	tbl := &model.Table{
		Rows: make([]model.Row, 0, len(t.Rows)),
	}

	for _, tr := range t.Rows {
		row := model.Row{Cells: make([]model.Cell, 0, len(tr.Cells))}
		for i := range tr.Cells {
			tc := &tr.Cells[i]
			cell := model.Cell{
				Shading:    CellFill(tc),
				Span:       1,
				Paragraphs: make([]model.Paragraph, 0, len(tc.Paragraphs)),
			}
			if tc.Properties != nil && tc.Properties.GridSpan != nil && tc.Properties.GridSpan.Val > 1 {
				cell.Span = tc.Properties.GridSpan.Val
			}
			for j := range tc.Paragraphs {
				cell.Paragraphs = append(cell.Paragraphs, *e.paragraph(&tc.Paragraphs[j]))
			}
			row.Cells = append(row.Cells, cell)
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	tbl.Columns = columnCount(t, tbl)
	return tbl
}

// columnCount uses the declared grid; tables without a grid fall back to
// the widest row measured in grid columns
func columnCount(t *Table, tbl *model.Table) int {
	if t.Grid != nil && len(t.Grid.Columns) > 0 {
		return len(t.Grid.Columns)
	}
	widest := 0
	for _, row := range tbl.Rows {
		width := 0
		for _, cell := range row.Cells {
			width += cell.ColSpan()
		}
		if width > widest {
			widest = width
		}
	}
	return widest
}
