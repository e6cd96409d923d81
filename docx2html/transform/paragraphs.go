package transform

import (
	"strings"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// Style names with dedicated markup
const (
	StyleHeading1      = "Heading 1"
	StyleHeading2      = "Heading 2"
	StyleHeading3      = "Heading 3"
	StyleListParagraph = "List Paragraph"
)

// FragmentKind tells the walker how a rendered block affects list state
type FragmentKind int

const (
	// FragmentNone is produced for blank paragraphs; nothing is emitted
	FragmentNone FragmentKind = iota
	// FragmentListItem must be wrapped in a list container
	FragmentListItem
	// FragmentBlock is any other block-level markup
	FragmentBlock
)

// Fragment is the rendered form of one body block
type Fragment struct {
	Kind FragmentKind
	HTML string
}

// renderParagraph picks exactly one rendering for a paragraph: heading,
// list item, shaded block or plain paragraph. Style is checked before
// shading.
func renderParagraph(p *model.Paragraph, pal *palette.Palette) Fragment {
	if strings.TrimSpace(p.Text()) == "" {
		return Fragment{Kind: FragmentNone}
	}

	inner := paragraphInner(p, pal)

	switch p.Style {
	case StyleHeading1:
		return block("<h1>" + inner + "</h1>")
	case StyleHeading2:
		return block("<h2>" + inner + "</h2>")
	case StyleHeading3:
		return block("<h3>" + inner + "</h3>")
	case StyleListParagraph:
		return Fragment{Kind: FragmentListItem, HTML: "<li>" + inner + "</li>"}
	}

	if palette.IsStrongFill(p.Shading) {
		class := pal.Class(p.Shading, palette.ClassNavy)
		return block(`<div class="shaded-para ` + class + `">` + inner + "</div>")
	}

	return block("<p>" + inner + "</p>")
}

func block(s string) Fragment {
	return Fragment{Kind: FragmentBlock, HTML: s}
}
