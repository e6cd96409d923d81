// Package docx provides DOCX file parsing functionality
package docx

import (
	"encoding/xml"
	"strings"
)

// Document represents the main document structure (word/document.xml)
type Document struct {
	XMLName xml.Name `xml:"document"`
	Body    Body     `xml:"body"`
}

// Body contains the document content in reading order
type Body struct {
	Blocks []BodyElement
}

// BodyElement is a top-level body child: *Paragraph or *Table
type BodyElement interface {
	isBodyElement()
}

func (*Paragraph) isBodyElement() {}
func (*Table) isBodyElement()     {}

// UnmarshalXML keeps paragraphs and tables in document order.
// Other body children (sectPr, sdt, bookmarks) are skipped.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para := &Paragraph{}
				if err := d.DecodeElement(para, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, para)
			case "tbl":
				tbl := &Table{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, tbl)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Paragraph represents a document paragraph (w:p)
type Paragraph struct {
	Properties *ParagraphProperties
	Runs       []Run
}

// UnmarshalXML collects paragraph properties and every run, including runs
// nested in hyperlinks, tracked insertions, smart tags and simple fields.
// Deleted runs (w:del) are dropped.
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				props := &ParagraphProperties{}
				if err := d.DecodeElement(props, &t); err != nil {
					return err
				}
				if p.Properties == nil {
					p.Properties = props
				}
			case "r":
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, run)
			case "hyperlink", "ins", "smartTag", "fldSimple", "customXml":
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// ParagraphProperties contains paragraph-level properties (w:pPr)
type ParagraphProperties struct {
	Style         *StyleRef      `xml:"pStyle"`
	NumPr         *NumberingPr   `xml:"numPr"`
	Shading       *Shading       `xml:"shd"`
	Justification *Justification `xml:"jc"`
	OutlineLevel  *OutlineLevel  `xml:"outlineLvl"`
}

// StyleRef references a style by ID (w:pStyle or w:rStyle)
type StyleRef struct {
	Val string `xml:"val,attr"`
}

// NumberingPr contains list numbering properties (w:numPr)
type NumberingPr struct {
	ILevel *ILevel `xml:"ilvl"`
	NumID  *NumID  `xml:"numId"`
}

// ILevel specifies the list indentation level
type ILevel struct {
	Val int `xml:"val,attr"`
}

// NumID references the numbering definition
type NumID struct {
	Val int `xml:"val,attr"`
}

// Justification specifies paragraph alignment (w:jc)
type Justification struct {
	Val string `xml:"val,attr"`
}

// OutlineLevel specifies heading outline level
type OutlineLevel struct {
	Val int `xml:"val,attr"`
}

// Run represents a run of text with formatting (w:r)
type Run struct {
	Properties *RunProperties
	Content    string
}

// UnmarshalXML reads run properties and the run's text content in order.
// Tabs become "\t", line breaks and carriage returns become "\n",
// non-breaking hyphens become "-". Page and column breaks add nothing.
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				props := &RunProperties{}
				if err := d.DecodeElement(props, &t); err != nil {
					return err
				}
				r.Properties = props
			case "t":
				var wt Text
				if err := d.DecodeElement(&wt, &t); err != nil {
					return err
				}
				text.WriteString(wt.Value)
			case "tab", "ptab":
				text.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			case "br":
				if breakType(t) == "" || breakType(t) == "textWrapping" {
					text.WriteString("\n")
				}
				if err := d.Skip(); err != nil {
					return err
				}
			case "cr":
				text.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			case "noBreakHyphen":
				text.WriteString("-")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Content = text.String()
			return nil
		}
	}
}

func breakType(t xml.StartElement) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == "type" {
			return attr.Value
		}
	}
	return ""
}

// RunProperties contains character-level formatting (w:rPr)
type RunProperties struct {
	Bold      *BoolProp  `xml:"b"`
	Italic    *BoolProp  `xml:"i"`
	Underline *Underline `xml:"u"`
	Strike    *BoolProp  `xml:"strike"`
	Color     *Color     `xml:"color"`
	Shading   *Shading   `xml:"shd"`
	Style     *StyleRef  `xml:"rStyle"`
}

// BoolProp represents a boolean property with optional val attribute
type BoolProp struct {
	Val *string `xml:"val,attr"`
}

// IsTrue returns whether the property is enabled
func (b *BoolProp) IsTrue() bool {
	if b == nil {
		return false
	}
	// If val attribute is not present, the property is true
	if b.Val == nil {
		return true
	}
	switch strings.ToLower(*b.Val) {
	case "0", "false", "off":
		return false
	}
	return true
}

// Underline specifies underline formatting
type Underline struct {
	Val string `xml:"val,attr"`
}

// Color specifies text color
type Color struct {
	Val string `xml:"val,attr"`
}

// Text contains the actual text content (w:t)
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// Table represents a document table (w:tbl)
type Table struct {
	XMLName    xml.Name         `xml:"tbl"`
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

// TableProperties contains table-level properties
type TableProperties struct {
	Style *StyleRef   `xml:"tblStyle"`
	Width *TableWidth `xml:"tblW"`
}

// TableWidth specifies table width
type TableWidth struct {
	W    string `xml:"w,attr"`
	Type string `xml:"type,attr"` // auto, dxa, pct
}

// TableGrid defines column widths
type TableGrid struct {
	Columns []GridCol `xml:"gridCol"`
}

// GridCol specifies a column width
type GridCol struct {
	W string `xml:"w,attr"`
}

// TableRow represents a table row (w:tr)
type TableRow struct {
	XMLName xml.Name    `xml:"tr"`
	Cells   []TableCell `xml:"tc"`
}

// TableCell represents a table cell (w:tc)
type TableCell struct {
	XMLName    xml.Name             `xml:"tc"`
	Properties *TableCellProperties `xml:"tcPr"`
	Paragraphs []Paragraph          `xml:"p"`
}

// TableCellProperties contains cell-level properties
type TableCellProperties struct {
	Width    *TableWidth `xml:"tcW"`
	GridSpan *GridSpan   `xml:"gridSpan"`
	VMerge   *VMerge     `xml:"vMerge"`
	Shading  *Shading    `xml:"shd"`
}

// GridSpan specifies horizontal cell merge
type GridSpan struct {
	Val int `xml:"val,attr"`
}

// VMerge specifies vertical cell merge
type VMerge struct {
	Val string `xml:"val,attr"` // restart, continue, or empty
}

// Shading specifies cell or paragraph background
type Shading struct {
	Val   string `xml:"val,attr"`
	Color string `xml:"color,attr"`
	Fill  string `xml:"fill,attr"`
}
