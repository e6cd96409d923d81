package transform

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

func p(style, text string) *model.Paragraph {
	return &model.Paragraph{Style: style, Runs: []model.Run{{Text: text}}}
}

func c(fill model.Color, lines ...string) model.Cell {
	cell := model.Cell{Shading: fill, Span: 1}
	for _, l := range lines {
		cell.Paragraphs = append(cell.Paragraphs, *p("", l))
	}
	return cell
}

func row(cells ...model.Cell) model.Row {
	return model.Row{Cells: cells}
}

func tbl(cols int, rows ...model.Row) *model.Table {
	return &model.Table{Columns: cols, Rows: rows}
}

func render(blocks ...model.Block) string {
	return NewPipeline(nil).Transform(&model.Document{Blocks: blocks})
}

func TestParagraphRendering(t *testing.T) {
	tests := []struct {
		name string
		para *model.Paragraph
		want string
	}{
		{"plain", p("", "Hello"), "<p>Hello</p>"},
		{"heading 1", p(StyleHeading1, "Title"), "<h1>Title</h1>"},
		{"heading 2", p(StyleHeading2, "Sub"), "<h2>Sub</h2>"},
		{"heading 3", p(StyleHeading3, "Minor"), "<h3>Minor</h3>"},
		{"heading 4 is plain", p("Heading 4", "Deep"), "<p>Deep</p>"},
		{"unknown style", p("Quote", "Q"), "<p>Q</p>"},
		{"list item", p(StyleListParagraph, "Item"), "<ul>\n<li>Item</li>\n</ul>"},
		{"blank", p("", "   "), ""},
		{"blank heading", p(StyleHeading1, ""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(tt.para))
		})
	}
}

func TestShadedParagraph(t *testing.T) {
	para := p("", "Note")
	para.Shading = palette.Green
	assert.Equal(t, `<div class="shaded-para fill-green">Note</div>`, render(para))

	para.Shading = palette.AltNavy
	assert.Equal(t, `<div class="shaded-para fill-navy">Note</div>`, render(para))

	// Light fills do not promote the paragraph.
	para.Shading = palette.Sky
	assert.Equal(t, "<p>Note</p>", render(para))

	// Style wins over shading.
	para.Shading = palette.Navy
	para.Style = StyleHeading2
	assert.Equal(t, "<h2>Note</h2>", render(para))
}

func TestRunFormatting(t *testing.T) {
	para := &model.Paragraph{Runs: []model.Run{
		{Text: "Key point", Bold: model.On, Italic: model.On, Color: palette.Blue},
	}}
	assert.Equal(t, `<p><span style="color:var(--blue)"><em><strong>Key point</strong></em></span></p>`, render(para))

	para = &model.Paragraph{Runs: []model.Run{
		{Text: "a", Bold: model.On},
		{Text: " b", Italic: model.Off},
		{Text: " c", Color: "AB12CD"},
		{Text: " d", Color: palette.Black},
		{Text: " e", Color: palette.MidGraySlate},
	}}
	assert.Equal(t,
		`<p><strong>a</strong> b<span style="color:#ab12cd"> c</span> d<span style="color:var(--mid)"> e</span></p>`,
		render(para))
}

func TestEmptyRunsContributeNothing(t *testing.T) {
	para := &model.Paragraph{Runs: []model.Run{
		{Text: "", Bold: model.On, Color: palette.Blue},
		{Text: "x"},
		{Text: "", Italic: model.On},
	}}
	assert.Equal(t, "<p>x</p>", render(para))
}

func TestRunTextIsEscaped(t *testing.T) {
	para := &model.Paragraph{Runs: []model.Run{{Text: `<script>alert("x") & 'y'</script>`, Bold: model.On}}}
	assert.Equal(t,
		`<p><strong>&lt;script&gt;alert(&#34;x&#34;) &amp; &#39;y&#39;&lt;/script&gt;</strong></p>`,
		render(para))
}

func TestSchoolNameBar(t *testing.T) {
	out := render(tbl(2, row(c(palette.Blue, "Springfield High"), c(palette.Blue, "Springfield, IL"))))
	assert.Equal(t,
		`<div class="school-name-bar"><span class="school-name">Springfield High</span><span class="school-loc">Springfield, IL</span></div>`,
		out)
}

func TestSchoolNameBarShortRow(t *testing.T) {
	// The row has fewer cells than the grid; the missing cell reads empty.
	out := render(tbl(2, row(c(palette.Blue, "Only Name"))))
	assert.Equal(t,
		`<div class="school-name-bar"><span class="school-name">Only Name</span><span class="school-loc"></span></div>`,
		out)
}

func TestSectionLabel(t *testing.T) {
	assert.Equal(t, `<div class="section-label fill-gold">Part A</div>`,
		render(tbl(1, row(c(palette.Gold, "Part A")))))
	assert.Equal(t, `<div class="section-label fill-navy">Part B</div>`,
		render(tbl(1, row(c(palette.AltNavy, "Part B")))))
}

func TestGotRightHeader(t *testing.T) {
	out := render(tbl(2, row(c(palette.Green, "anything"), c(palette.Green, "else"))))
	assert.Equal(t, `<div class="got-right-header">What This Site Does Well</div>`, out)

	custom := NewPipeline(&PipelineOptions{GotRightCaption: "Strengths & Wins"}).
		Table(tbl(2, row(c(palette.Green, "x"), c(palette.Green, "y"))))
	assert.Equal(t, `<div class="got-right-header">Strengths &amp; Wins</div>`, custom)
}

func TestTwoColContent(t *testing.T) {
	out := render(tbl(2,
		row(c(palette.White, "L0"), c(palette.White, "R0")),
		row(c(palette.White, "L1"), c(palette.White, "R1")),
		row(c(palette.White, ""), c(palette.White, "")),
		row(c(palette.White, "L3")),
	))
	assert.Equal(t, `<div class="two-col-table">`+
		`<div class="two-col-row"><div class="two-col-cell">L0</div><div class="two-col-cell">R0</div></div>`+
		`<div class="two-col-row row-alt"><div class="two-col-cell">L1</div><div class="two-col-cell">R1</div></div>`+
		`<div class="two-col-row row-alt"><div class="two-col-cell">L3</div><div class="two-col-cell"></div></div>`+
		`</div>`, out)
}

func TestTakeawayBox(t *testing.T) {
	out := render(tbl(1,
		row(c(palette.GoldTintA, "1.  Keep it simple")),
		row(c(palette.GoldTintA, "")),
		row(c(palette.GoldTintA, "Plain second")),
	))
	assert.Equal(t, `<div class="takeaway-box">`+
		`<div class="takeaway-item"><span class="takeaway-num">1</span><span class="takeaway-text">Keep it simple</span></div>`+
		`<div class="takeaway-item"><span class="takeaway-num">2</span><span class="takeaway-text">Plain second</span></div>`+
		`</div>`, out)
}

func TestTakeawayNumberWhitespace(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"space", "3. Ship it"},
		{"tab", "3.\tShip it"},
		{"no-break space", "3.\u00a0Ship it"},
		{"narrow no-break space", "3.\u202fShip it"},
		{"ideographic space", "3.\u3000Ship it"},
		{"mixed", "3.\u00a0 \u2003Ship it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(tbl(1, row(c(palette.GoldTintA, tt.text)), row(c(palette.GoldTintA, "x"))))
			assert.Contains(t, out, `<span class="takeaway-text">Ship it</span>`)
		})
	}

	// A number without following white space is kept.
	out := render(tbl(1, row(c(palette.GoldTintA, "3.Ship it")), row(c(palette.GoldTintA, "x"))))
	assert.Contains(t, out, `<span class="takeaway-text">3.Ship it</span>`)
}

func TestInfoGrid(t *testing.T) {
	out := render(tbl(2,
		row(c(palette.Sky, "Label", "", "More"), c("", "Value & more")),
	))
	assert.Equal(t, `<div class="info-grid"><div class="info-row">`+
		`<div class="info-cell fill-sky">Label<br>More</div>`+
		`<div class="info-cell fill-white">Value &amp; more</div>`+
		`</div></div>`, out)
}

func TestPrincipleHeader(t *testing.T) {
	out := render(tbl(1,
		row(c(palette.Navy, "Principle 3: Clear navigation")),
		row(c(palette.Navy, "ignored")),
	))
	assert.Equal(t,
		`<div class="principle-header"><span class="principle-label">Principle 3:</span> Clear navigation</div>`,
		out)

	out = render(tbl(1, row(c(palette.Navy, "Overview")), row(c(palette.Navy, "x"))))
	assert.Equal(t, `<div class="principle-header">Overview</div>`, out)
	out = render(tbl(1, row(c(palette.Navy, "Principle 2:\u00a0Clarity")), row(c(palette.Navy, "x"))))
	assert.Equal(t,
		`<div class="principle-header"><span class="principle-label">Principle 2:</span> Clarity</div>`,
		out)

	out = render(tbl(1, row(c(palette.Navy, "Principle 2:\u2009\u00a0Clarity")), row(c(palette.Navy, "x"))))
	assert.Equal(t,
		`<div class="principle-header"><span class="principle-label">Principle 2:</span> Clarity</div>`,
		out)
}

func TestScoreTable(t *testing.T) {
	out := render(tbl(3,
		row(c(palette.AltNavy, "Area"), c(palette.AltNavy, "Score"), c(palette.AltNavy, "Notes")),
		row(c("", "Nav"), c(palette.LightGreen, "4"), c(palette.Yellow, "ok")),
	))
	assert.Equal(t, `<div class="table-wrap"><table class="score-table">`+
		`<tr><th class="fill-navy">Area</th><th class="fill-navy">Score</th><th class="fill-navy">Notes</th></tr>`+
		`<tr><td class="fill-white">Nav</td><td class="fill-green-light">4</td><td class="fill-yellow">ok</td></tr>`+
		`</table></div>`, out)
}

func TestScoreLegend(t *testing.T) {
	out := render(tbl(4, row(
		c(palette.LightGreen, "Strong"),
		c(palette.Yellow, "Adequate"),
		c(palette.LightRed, "Weak"),
		c("123456", "Other"),
	)))
	assert.Equal(t, `<div class="score-legend">`+
		`<div class="legend-cell fill-green-light">Strong</div>`+
		`<div class="legend-cell fill-yellow">Adequate</div>`+
		`<div class="legend-cell fill-red-light">Weak</div>`+
		`<div class="legend-cell">Other</div>`+
		`</div>`, out)
}

func TestGenericTable(t *testing.T) {
	out := render(tbl(2,
		row(c("", "H1"), c("", "H2")),
		row(c("", "a"), c("ABCDEF", "b")),
	))
	assert.Equal(t, `<div class="table-wrap"><table>`+
		`<tr><th class="fill-white">H1</th><th class="fill-white">H2</th></tr>`+
		`<tr><td class="fill-white">a</td><td>b</td></tr>`+
		`</table></div>`, out)
}

func TestGenericTableColSpan(t *testing.T) {
	merged := c("", "Merged")
	merged.Span = 2
	out := render(tbl(3,
		row(merged, c("", "Right")),
		row(c("", "a"), c("", "b"), c("", "c")),
	))
	assert.Contains(t, out, `<th class="fill-white" colspan="2">Merged</th>`)
}

func TestEmptyTable(t *testing.T) {
	assert.Equal(t, `<div class="table-wrap"><table></table></div>`, render(tbl(2)))
}

func TestDocumentOrderAndLists(t *testing.T) {
	out := render(
		p(StyleHeading1, "Report"),
		p(StyleListParagraph, "one"),
		p(StyleListParagraph, "two"),
		tbl(1, row(c(palette.Navy, "Section"))),
		p(StyleListParagraph, "three"),
	)
	assert.Equal(t, "<h1>Report</h1>\n<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n"+
		`<div class="section-label fill-navy">Section</div>`+"\n<ul>\n<li>three</li>\n</ul>", out)
}

func TestOutputIsWellFormed(t *testing.T) {
	out := render(
		p(StyleHeading1, "A & B"),
		p(StyleListParagraph, "<x>"),
		tbl(2, row(c(palette.Sky, "k"), c(palette.Sky, "v"))),
		tbl(3, row(c(palette.AltNavy, "a"), c("", "b"), c("", "c"))),
	)
	nodes, err := html.ParseFragment(strings.NewReader(out), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, nodes)
	assert.NotContains(t, out, "<x>")
}

func TestTransformNilDocument(t *testing.T) {
	assert.Equal(t, "", NewPipeline(nil).Transform(nil))
}

func TestTransformIsDeterministic(t *testing.T) {
	doc := &model.Document{Blocks: []model.Block{
		p(StyleHeading2, "x"),
		tbl(2, row(c(palette.White, "a"), c(palette.White, "b")), row(c(palette.White, "c"), c(palette.White, "d"))),
	}}
	pipe := NewPipeline(nil)
	assert.Equal(t, pipe.Transform(doc), pipe.Transform(doc))
}

func TestTableClassifiedHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var got []Role
	pipe := NewPipeline(&PipelineOptions{
		Logger: logger,
		OnTableClassified: func(index int, shape Shape, role Role) {
			assert.Equal(t, len(got), index)
			got = append(got, role)
		},
	})
	pipe.Transform(&model.Document{Blocks: []model.Block{
		tbl(1, row(c(palette.Navy, "S"))),
		p("", "between"),
		tbl(2, row(c(palette.Blue, "n"), c(palette.Blue, "l"))),
	}})

	assert.Equal(t, []Role{RoleSectionLabel, RoleSchoolNameBar}, got)
	assert.Contains(t, buf.String(), "table classified")
	assert.Contains(t, buf.String(), "role=school-name-bar")
}

func TestCustomPaletteClass(t *testing.T) {
	pal := palette.New(map[string]string{"#abcdef": "fill-custom"})
	out := NewPipeline(&PipelineOptions{Palette: pal}).
		Table(tbl(2, row(c("", "h"), c("ABCDEF", "x"))))
	assert.Contains(t, out, `<th class="fill-custom">x</th>`)
}
