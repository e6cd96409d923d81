package docx

import "github.com/tenebris-tech/x2html/docx2html/model"

// Metadata accessors. Every missing intermediate node (properties,
// shading or color element) reads as model.NoColor; they never fail.

// CellFill returns the background fill of a table cell (w:tcPr/w:shd/@w:fill)
func CellFill(tc *TableCell) model.Color {
	if tc == nil || tc.Properties == nil {
		return model.NoColor
	}
	return shadingFill(tc.Properties.Shading)
}

// ParagraphShading returns the background fill of a paragraph (w:pPr/w:shd/@w:fill)
func ParagraphShading(p *Paragraph) model.Color {
	if p == nil || p.Properties == nil {
		return model.NoColor
	}
	return shadingFill(p.Properties.Shading)
}

// RunColor returns the font color of a run (w:rPr/w:color/@w:val)
func RunColor(r *Run) model.Color {
	if r == nil || r.Properties == nil || r.Properties.Color == nil {
		return model.NoColor
	}
	return model.NormalizeColor(r.Properties.Color.Val)
}

func shadingFill(shd *Shading) model.Color {
	if shd == nil {
		return model.NoColor
	}
	return model.NormalizeColor(shd.Fill)
}

// toggle maps an optional w:b / w:i element to a tri-state value
func toggle(b *BoolProp) model.Toggle {
	if b == nil {
		return model.Unset
	}
	return model.ToggleOf(b.IsTrue())
}

// RunBold returns the run's explicit bold setting
func RunBold(r *Run) model.Toggle {
	if r == nil || r.Properties == nil {
		return model.Unset
	}
	return toggle(r.Properties.Bold)
}

// RunItalic returns the run's explicit italic setting
func RunItalic(r *Run) model.Toggle {
	if r == nil || r.Properties == nil {
		return model.Unset
	}
	return toggle(r.Properties.Italic)
}
