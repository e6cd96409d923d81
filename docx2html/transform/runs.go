package transform

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// escape makes document text safe to embed in element content and
// attribute values
func escape(s string) string {
	return html.EscapeString(s)
}

// renderRuns converts a paragraph's runs to inline HTML.
// Bold wraps the escaped text first, italic wraps bold, and a color span
// wraps everything.
func renderRuns(runs []model.Run, pal *palette.Palette) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(renderRun(run, pal))
	}
	return sb.String()
}

func renderRun(run model.Run, pal *palette.Palette) string {
	text := escape(run.Text)
	if text == "" {
		return ""
	}
	if run.Bold.IsOn() {
		text = "<strong>" + text + "</strong>"
	}
	if run.Italic.IsOn() {
		text = "<em>" + text + "</em>"
	}
	if css, ok := pal.InlineColor(run.Color); ok {
		text = `<span style="color:` + css + `">` + text + "</span>"
	}
	return text
}

// paragraphInner returns the inline content of a paragraph, falling back to
// its escaped plain text when no run produced output
func paragraphInner(p *model.Paragraph, pal *palette.Palette) string {
	if inner := renderRuns(p.Runs, pal); inner != "" {
		return inner
	}
	return escape(strings.TrimSpace(p.Text()))
}
