package docx

import (
	"encoding/xml"
	"strings"
)

// Styles represents the styles definition file (word/styles.xml)
type Styles struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []StyleDef `xml:"style"`
}

// StyleDef defines a single style
type StyleDef struct {
	XMLName xml.Name   `xml:"style"`
	Type    string     `xml:"type,attr"`    // paragraph, character, table, numbering
	StyleID string     `xml:"styleId,attr"` // style identifier
	Default string     `xml:"default,attr"` // 1 if default style
	Name    *StyleName `xml:"name"`
	BasedOn *BasedOn   `xml:"basedOn"`
}

// StyleName contains the style's display name
type StyleName struct {
	Val string `xml:"val,attr"`
}

// BasedOn references the parent style
type BasedOn struct {
	Val string `xml:"val,attr"`
}

// builtinNames maps the lower-case names Word stores for some built-in
// styles to the names shown in the Word UI.
var builtinNames = map[string]string{
	"caption":   "Caption",
	"footer":    "Footer",
	"header":    "Header",
	"heading 1": "Heading 1",
	"heading 2": "Heading 2",
	"heading 3": "Heading 3",
	"heading 4": "Heading 4",
	"heading 5": "Heading 5",
	"heading 6": "Heading 6",
	"heading 7": "Heading 7",
	"heading 8": "Heading 8",
	"heading 9": "Heading 9",
}

// GetStyle returns a style by its ID
func (s *Styles) GetStyle(id string) *StyleDef {
	for i := range s.Styles {
		if s.Styles[i].StyleID == id {
			return &s.Styles[i]
		}
	}
	return nil
}

// DefaultParagraphStyle returns the style marked as the paragraph default
func (s *Styles) DefaultParagraphStyle() *StyleDef {
	for i := range s.Styles {
		if s.Styles[i].Type == "paragraph" && isOn(s.Styles[i].Default) {
			return &s.Styles[i]
		}
	}
	return nil
}

// ParagraphStyleName resolves a paragraph style ID to its display name.
// An empty or unknown ID resolves to the default paragraph style, and
// to "" when the document declares none.
func (s *Styles) ParagraphStyleName(styleID string) string {
	style := s.GetStyle(styleID)
	if style == nil || (style.Type != "" && style.Type != "paragraph") {
		style = s.DefaultParagraphStyle()
	}
	if style == nil || style.Name == nil {
		return ""
	}
	return displayName(style.Name.Val)
}

// Count returns the number of style definitions
func (s *Styles) Count() int {
	return len(s.Styles)
}

func displayName(name string) string {
	if ui, ok := builtinNames[strings.ToLower(name)]; ok && name == strings.ToLower(name) {
		return ui
	}
	return name
}

func isOn(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on":
		return true
	}
	return false
}
