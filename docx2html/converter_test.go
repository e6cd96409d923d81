package docx2html

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/tenebris-tech/x2html/docx2html/docx"
	"github.com/tenebris-tech/x2html/docx2html/page"
	"github.com/tenebris-tech/x2html/docx2html/transform"
)

const testStyles = `<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
  <w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/></w:style>`

// createTestDocx creates a minimal valid DOCX for testing
func createTestDocx(content string) []byte {
	return createTestDocxWithStyles(content, "")
}

// createTestDocxWithStyles adds a word/styles.xml part when styles is set
func createTestDocxWithStyles(content, styles string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes := `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	f, _ := w.Create("[Content_Types].xml")
	_, _ = f.Write([]byte(contentTypes))

	rels := `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	f, _ = w.Create("_rels/.rels")
	_, _ = f.Write([]byte(rels))

	document := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + content + `</w:body>
</w:document>`
	f, _ = w.Create("word/document.xml")
	_, _ = f.Write([]byte(document))

	if styles != "" {
		stylesXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  ` + styles + `
</w:styles>`
		f, _ = w.Create("word/styles.xml")
		_, _ = f.Write([]byte(stylesXML))
	}

	_ = w.Close()
	return buf.Bytes()
}

func para(style, text string) string {
	ppr := ""
	if style != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	return `<w:p>` + ppr + `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func cell(fill, text string) string {
	tcpr := ""
	if fill != "" {
		tcpr = `<w:tcPr><w:shd w:val="clear" w:color="auto" w:fill="` + fill + `"/></w:tcPr>`
	}
	return `<w:tc>` + tcpr + para("", text) + `</w:tc>`
}

func tableXML(cols int, rows ...string) string {
	grid := ""
	for i := 0; i < cols; i++ {
		grid += `<w:gridCol w:w="4000"/>`
	}
	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblGrid>` + grid + `</w:tblGrid>`)
	for _, r := range rows {
		sb.WriteString(`<w:tr>` + r + `</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}

func TestConvertSimpleParagraph(t *testing.T) {
	data := createTestDocx(para("", "Hello World"))

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello World</p>", body)
}

func TestConvertHeadingsFromStyles(t *testing.T) {
	data := createTestDocxWithStyles(
		para("Heading1", "Intro")+para("Heading2", "Details")+para("", "Body text"),
		testStyles)

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Intro</h1>\n<h2>Details</h2>\n<p>Body text</p>", body)
}

func TestConvertListItemsAreBracketed(t *testing.T) {
	data := createTestDocxWithStyles(
		para("ListParagraph", "A")+
			para("ListParagraph", "B")+
			para("ListParagraph", "C")+
			para("", "After"),
		testStyles)

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n<li>A</li>\n<li>B</li>\n<li>C</li>\n</ul>\n<p>After</p>", body)
}

func TestConvertFormattingNesting(t *testing.T) {
	data := createTestDocx(`<w:p><w:r>
      <w:rPr><w:b/><w:i/><w:color w:val="2E86C1"/></w:rPr>
      <w:t>Key point</w:t>
    </w:r></w:p>`)

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, `<p><span style="color:var(--blue)"><em><strong>Key point</strong></em></span></p>`, body)
}

func TestConvertSchoolNameBar(t *testing.T) {
	data := createTestDocx(tableXML(2, cell("2E86C1", "Springfield High")+cell("2E86C1", "Springfield, IL")))

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="school-name-bar"><span class="school-name">Springfield High</span><span class="school-loc">Springfield, IL</span></div>`,
		body)
}

func TestConvertEscapesText(t *testing.T) {
	data := createTestDocx(para("", "a &lt; b &amp; &quot;c&quot;"))

	body, err := New().ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, "<p>a &lt; b &amp; &#34;c&#34;</p>", body)
}

func TestConvertFullPage(t *testing.T) {
	data := createTestDocx(para("", "Hello"))

	out, err := New(WithTitle("Annual Review")).Convert(data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Annual Review — Spark Academy</title>")
	assert.Contains(t, out, "<p>Hello</p>")
	assert.Contains(t, out, page.Stylesheet()[:40])

	_, err = html.Parse(strings.NewReader(out))
	assert.NoError(t, err)
}

func TestConvertDefaultTitle(t *testing.T) {
	out, err := New().Convert(createTestDocx(para("", "x")))
	require.NoError(t, err)
	assert.Contains(t, out, "<title>"+DefaultTitle+" — Spark Academy</title>")
}

func TestConvertBodyOnly(t *testing.T) {
	data := createTestDocx(para("", "Hello"))

	out, err := New(WithBodyOnly(true)).Convert(data)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", out)
}

func TestConvertIsDeterministic(t *testing.T) {
	data := createTestDocxWithStyles(
		para("Heading1", "Title")+
			tableXML(1, cell("1E4D8C", "Section"))+
			para("ListParagraph", "one")+
			tableXML(2, cell("D6E4F0", "k")+cell("D6E4F0", "v")),
		testStyles)

	c := New()
	first, err := c.Convert(data)
	require.NoError(t, err)
	second, err := c.Convert(data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConvertFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "My_Report-2024.docx")
	out := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(in, createTestDocx(para("", "Body")), 0644))

	require.NoError(t, New().ConvertFileToFile(in, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "<title>My Report 2024 — Spark Academy</title>")
	assert.Contains(t, string(got), "<h2>My Report 2024</h2>")
}

func TestConvertMarkdown(t *testing.T) {
	data := createTestDocxWithStyles(para("Heading1", "Intro")+para("", "Hello there"), testStyles)

	md, err := New().ConvertMarkdown(data)
	require.NoError(t, err)
	assert.Contains(t, md, "# Intro")
	assert.Contains(t, md, "Hello there")
}

func TestOutline(t *testing.T) {
	data := createTestDocxWithStyles(
		para("ListParagraph", "a")+
			para("ListParagraph", "b")+
			tableXML(1, cell("1E4D8C", "Section")),
		testStyles)

	o, err := New().Outline(data)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Elements["ul"])
	assert.Equal(t, 2, o.Elements["li"])
	assert.Equal(t, 1, o.Classes["section-label"])
	assert.Equal(t, 1, o.Classes["fill-navy"])
	assert.Contains(t, o.String(), "li=2")
}

func TestCallbacks(t *testing.T) {
	data := createTestDocxWithStyles(
		tableXML(1, cell("1E4D8C", "Section"))+tableXML(2, cell("", "a")+cell("", "b")),
		testStyles)

	parsed := false
	styleCount := 0
	var roles []transform.Role
	c := New(
		WithOnDocumentParsed(func() { parsed = true }),
		WithOnStylesParsed(func(n int) { styleCount = n }),
		WithOnTableClassified(func(index int, shape transform.Shape, role transform.Role) {
			assert.Equal(t, len(roles), index)
			roles = append(roles, role)
		}),
	)

	_, err := c.ConvertBody(data)
	require.NoError(t, err)
	assert.True(t, parsed)
	assert.Equal(t, 4, styleCount)
	assert.Equal(t, []transform.Role{transform.RoleSectionLabel, transform.RoleGeneric}, roles)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, transform.DefaultGotRightCaption, opts.GotRightCaption)
	assert.Equal(t, "Spark Docs", opts.Site.Name)
	assert.NotNil(t, opts.Palette)
	assert.False(t, opts.BodyOnly)
}

func TestGotRightCaptionOption(t *testing.T) {
	data := createTestDocx(tableXML(2, cell("1A7A4A", "ignored")+cell("1A7A4A", "ignored")))

	body, err := New(WithGotRightCaption("Strengths")).ConvertBody(data)
	require.NoError(t, err)
	assert.Equal(t, `<div class="got-right-header">Strengths</div>`, body)
}

func TestInvalidDocx(t *testing.T) {
	_, err := New().Convert([]byte("not a docx file"))
	assert.Error(t, err)

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, _ := w.Create("other.xml")
	_, _ = f.Write([]byte("<x/>"))
	require.NoError(t, w.Close())

	_, err = New().Convert(buf.Bytes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, docx.ErrNotDocx))
}
