package transform

import (
	"strings"

	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/palette"
)

// Role is the semantic layout assigned to a table
type Role string

const (
	RoleSchoolNameBar   Role = "school-name-bar"
	RoleSectionLabel    Role = "section-label"
	RoleGotRightHeader  Role = "got-right-header"
	RoleTwoColContent   Role = "two-col-content"
	RoleTakeawayBox     Role = "takeaway-box"
	RoleInfoGrid        Role = "info-grid"
	RolePrincipleHeader Role = "principle-header"
	RoleScoreTable      Role = "score-table"
	RoleScoreLegend     Role = "score-legend"
	RoleGeneric         Role = "generic"
)

// Shape is everything the classifier looks at: row count, declared column
// count and the fill of the first cell
type Shape struct {
	Rows int
	Cols int
	Fill model.Color
}

// ShapeOf extracts the classification signals of a table
func ShapeOf(t *model.Table) Shape {
	return Shape{
		Rows: len(t.Rows),
		Cols: t.Columns,
		Fill: t.FirstCell().Shading,
	}
}

// Rule is one entry of the classification cascade
type Rule struct {
	Name  string
	Match func(Shape) bool
	Role  Role
}

func fillIn(colors ...model.Color) func(model.Color) bool {
	return func(c model.Color) bool {
		for _, want := range colors {
			if strings.EqualFold(c.Hex(), want.Hex()) {
				return true
			}
		}
		return false
	}
}

var (
	isBarFill       = fillIn(palette.Blue)
	isLabelFill     = fillIn(palette.Navy, palette.Blue, palette.Green, palette.Gold, palette.AltNavy)
	isGotRightFill  = fillIn(palette.Green)
	isContentFill   = fillIn(palette.White, palette.LightGray)
	isTakeawayFill  = fillIn(palette.GoldTintA, palette.GoldTintB)
	isInfoFill      = fillIn(palette.Sky, palette.SkyAlt)
	isPrincipleFill = fillIn(palette.Navy, palette.AltNavy)
	isScoreFill     = fillIn(palette.AltNavy)
	isLegendFill    = fillIn(palette.LightGreen)
)

// rules is evaluated top to bottom; the first match wins. Several roles
// share a fill, so the order is significant.
var rules = []Rule{
	{"empty", func(s Shape) bool { return s.Rows == 0 }, RoleGeneric},
	{"unfilled", func(s Shape) bool { return !s.Fill.IsSet() }, RoleGeneric},
	{"school-name-bar", func(s Shape) bool { return s.Rows == 1 && s.Cols == 2 && isBarFill(s.Fill) }, RoleSchoolNameBar},
	{"section-label", func(s Shape) bool { return s.Rows == 1 && s.Cols == 1 && isLabelFill(s.Fill) }, RoleSectionLabel},
	{"got-right-header", func(s Shape) bool { return s.Rows == 1 && s.Cols == 2 && isGotRightFill(s.Fill) }, RoleGotRightHeader},
	{"two-col-content", func(s Shape) bool { return s.Cols == 2 && s.Rows > 1 && isContentFill(s.Fill) }, RoleTwoColContent},
	{"takeaway-box", func(s Shape) bool { return s.Cols == 1 && s.Rows >= 1 && isTakeawayFill(s.Fill) }, RoleTakeawayBox},
	{"info-grid", func(s Shape) bool { return s.Cols == 2 && isInfoFill(s.Fill) }, RoleInfoGrid},
	{"principle-header", func(s Shape) bool { return s.Cols == 1 && isPrincipleFill(s.Fill) }, RolePrincipleHeader},
	{"score-table", func(s Shape) bool { return isScoreFill(s.Fill) && s.Cols >= 3 }, RoleScoreTable},
	{"score-legend", func(s Shape) bool { return s.Rows == 1 && s.Cols >= 4 && isLegendFill(s.Fill) }, RoleScoreLegend},
}

// Rules returns the classification cascade in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify assigns a role to a table shape
func Classify(s Shape) Role {
	for _, r := range rules {
		if r.Match(s) {
			return r.Role
		}
	}
	return RoleGeneric
}

// ClassifyTable assigns a role to a table
func ClassifyTable(t *model.Table) Role {
	return Classify(ShapeOf(t))
}
