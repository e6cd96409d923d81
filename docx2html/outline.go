package docx2html

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Outline is a census of the elements and classes in rendered markup
type Outline struct {
	Elements map[string]int
	Classes  map[string]int
}

// ParseOutline parses rendered markup and counts its elements and classes.
// Elements the parser adds to complete a document (html, head, body) are
// not counted.
func ParseOutline(markup string) (*Outline, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	o := &Outline{
		Elements: make(map[string]int),
		Classes:  make(map[string]int),
	}
	for _, n := range nodes {
		o.walk(n)
	}
	return o, nil
}

func (o *Outline) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		o.Elements[n.Data]++
		for _, a := range n.Attr {
			if a.Key != "class" {
				continue
			}
			for _, class := range strings.Fields(a.Val) {
				o.Classes[class]++
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		o.walk(child)
	}
}

// String lists element and class counts in sorted order
func (o *Outline) String() string {
	var sb strings.Builder
	sb.WriteString("elements:")
	writeCounts(&sb, o.Elements)
	sb.WriteString("\nclasses:")
	writeCounts(&sb, o.Classes)
	return sb.String()
}

func writeCounts(sb *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, " %s=%d", k, counts[k])
	}
}

// Outline renders DOCX data and returns the census of the body markup
func (c *Converter) Outline(data []byte) (*Outline, error) {
	body, err := c.ConvertBody(data)
	if err != nil {
		return nil, err
	}
	return ParseOutline(body)
}
