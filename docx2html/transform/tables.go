package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// DefaultGotRightCaption is the fixed caption of got-right-header tables
const DefaultGotRightCaption = "What This Site Does Well"

// space matches any Unicode white space. Word commonly puts a no-break
// space after list numbers and labels, which RE2's \s does not cover.
const space = `[\s\v\x{1C}-\x{1F}\x{85}\p{Z}]`

var (
	takeawayNumberRe = regexp.MustCompile(`^\d+\.` + space + `+`)
	principleRe      = regexp.MustCompile(`^(Principle \d+:)` + space + `+(.*)`)
)

// tableRenderer renders a classified table. Each role has one template.
type tableRenderer struct {
	palette         *palette.Palette
	gotRightCaption string
}

func (r *tableRenderer) render(role Role, t *model.Table) string {
	switch role {
	case RoleSchoolNameBar:
		return r.schoolNameBar(t)
	case RoleSectionLabel:
		return r.sectionLabel(t)
	case RoleGotRightHeader:
		return `<div class="got-right-header">` + escape(r.gotRightCaption) + "</div>"
	case RoleTwoColContent:
		return r.twoColContent(t)
	case RoleTakeawayBox:
		return r.takeawayBox(t)
	case RoleInfoGrid:
		return r.infoGrid(t)
	case RolePrincipleHeader:
		return r.principleHeader(t)
	case RoleScoreTable:
		return `<div class="table-wrap"><table class="score-table">` + r.gridRows(t) + "</table></div>"
	case RoleScoreLegend:
		return r.scoreLegend(t)
	default:
		return `<div class="table-wrap"><table>` + r.gridRows(t) + "</table></div>"
	}
}

func (r *tableRenderer) schoolNameBar(t *model.Table) string {
	row := t.Rows[0]
	name := escape(row.Cell(0).Text())
	loc := escape(row.Cell(1).Text())
	return `<div class="school-name-bar"><span class="school-name">` + name +
		`</span><span class="school-loc">` + loc + "</span></div>"
}

func (r *tableRenderer) sectionLabel(t *model.Table) string {
	cell := t.Rows[0].Cell(0)
	fill := cell.Shading
	if !fill.IsSet() {
		fill = palette.Navy
	}
	class := r.palette.Class(fill, palette.ClassNavy)
	return `<div class="section-label ` + class + `">` + escape(cell.Text()) + "</div>"
}

func (r *tableRenderer) twoColContent(t *model.Table) string {
	var sb strings.Builder
	sb.WriteString(`<div class="two-col-table">`)
	for i, row := range t.Rows {
		left := row.Cell(0).Text()
		right := row.Cell(1).Text()
		if left == "" && right == "" {
			continue
		}
		class := "two-col-row"
		if i%2 == 1 {
			class += " row-alt"
		}
		sb.WriteString(`<div class="` + class + `">`)
		sb.WriteString(`<div class="two-col-cell">` + escape(left) + "</div>")
		sb.WriteString(`<div class="two-col-cell">` + escape(right) + "</div>")
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (r *tableRenderer) takeawayBox(t *model.Table) string {
	var sb strings.Builder
	sb.WriteString(`<div class="takeaway-box">`)
	n := 0
	for _, row := range t.Rows {
		text := row.Cell(0).Text()
		if text == "" {
			continue
		}
		n++
		text = takeawayNumberRe.ReplaceAllString(text, "")
		sb.WriteString(`<div class="takeaway-item">`)
		sb.WriteString(`<span class="takeaway-num">` + strconv.Itoa(n) + "</span>")
		sb.WriteString(`<span class="takeaway-text">` + escape(text) + "</span>")
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (r *tableRenderer) infoGrid(t *model.Table) string {
	var sb strings.Builder
	sb.WriteString(`<div class="info-grid">`)
	for _, row := range t.Rows {
		sb.WriteString(`<div class="info-row">`)
		for _, cell := range row.Cells {
			class := r.palette.Class(fillOrWhite(cell.Shading), palette.ClassWhite)
			sb.WriteString(`<div class="info-cell ` + class + `">` + cellLines(cell) + "</div>")
		}
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

// cellLines joins the non-blank paragraphs of a cell with line breaks
func cellLines(cell model.Cell) string {
	var lines []string
	for i := range cell.Paragraphs {
		line := strings.TrimSpace(cell.Paragraphs[i].Text())
		if line != "" {
			lines = append(lines, escape(line))
		}
	}
	return strings.Join(lines, "<br>")
}

func (r *tableRenderer) principleHeader(t *model.Table) string {
	text := t.Rows[0].Cell(0).Text()
	if m := principleRe.FindStringSubmatch(text); m != nil {
		return `<div class="principle-header"><span class="principle-label">` + escape(m[1]) +
			"</span> " + escape(m[2]) + "</div>"
	}
	return `<div class="principle-header">` + escape(text) + "</div>"
}

func (r *tableRenderer) scoreLegend(t *model.Table) string {
	var sb strings.Builder
	sb.WriteString(`<div class="score-legend">`)
	for _, cell := range t.Rows[0].Cells {
		class := r.palette.Class(fillOrWhite(cell.Shading), "")
		sb.WriteString(`<div class="` + classList("legend-cell", class) + `">` + escape(cell.Text()) + "</div>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

// gridRows renders rows as <tr>, the first row with header cells. Every
// cell carries the class of its own fill; merged cells keep their span.
func (r *tableRenderer) gridRows(t *model.Table) string {
	var sb strings.Builder
	for i, row := range t.Rows {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		sb.WriteString("<tr>")
		for _, cell := range row.Cells {
			sb.WriteString("<" + tag)
			if class := r.palette.Class(fillOrWhite(cell.Shading), ""); class != "" {
				sb.WriteString(` class="` + class + `"`)
			}
			if span := cell.ColSpan(); span > 1 {
				sb.WriteString(` colspan="` + strconv.Itoa(span) + `"`)
			}
			sb.WriteString(">" + escape(cell.Text()) + "</" + tag + ">")
		}
		sb.WriteString("</tr>")
	}
	return sb.String()
}

// fillOrWhite treats an unshaded cell as white
func fillOrWhite(c model.Color) model.Color {
	if c.IsSet() {
		return c
	}
	return palette.White
}

func classList(names ...string) string {
	var kept []string
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}
