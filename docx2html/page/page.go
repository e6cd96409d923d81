// Package page wraps a rendered body fragment in the fixed site shell:
// document head with the embedded stylesheet, site header, title bar and
// footer.
package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
)

//go:embed style.css
var stylesheet string

// Stylesheet returns the static stylesheet the body markup is written against
func Stylesheet() string {
	return stylesheet
}

// Site holds the fixed strings of the shell
type Site struct {
	Name         string // header title, e.g. "Spark Docs"
	Organization string // used in <title> and the title bar
	Project      string // header subtitle and footer
	Logo         string // single-letter logo mark
	Notice       string // footer notice
	ExtraCSS     string // appended after the built-in stylesheet
}

// DefaultSite returns the house shell strings
func DefaultSite() Site {
	return Site{
		Name:         "Spark Docs",
		Organization: "Spark Academy",
		Project:      "Spark Academy Website Project",
		Logo:         "S",
		Notice:       "For internal use only",
	}
}

func (s Site) withDefaults() Site {
	d := DefaultSite()
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.Organization == "" {
		s.Organization = d.Organization
	}
	if s.Project == "" {
		s.Project = d.Project
	}
	if s.Logo == "" {
		s.Logo = d.Logo
	}
	if s.Notice == "" {
		s.Notice = d.Notice
	}
	return s
}

const shell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} — {{.Site.Organization}}</title>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=DM+Serif+Display:ital@0;1&family=DM+Sans:ital,wght@0,300;0,400;0,500;0,600;1,300;1,400&display=swap" rel="stylesheet">
<style>{{.CSS}}</style>
</head>
<body>
<header class="site-header">
  <div class="logo-mark">{{.Site.Logo}}</div>
  <div class="header-text">
    <h1>{{.Site.Name}}</h1>
    <p>{{.Site.Project}}</p>
  </div>
</header>
<div class="doc-wrapper">
  <div class="doc-card">
    <div class="doc-title-bar">
      <h2>{{.Title}}</h2>
      <p>{{.Site.Organization}} &middot; Internal Document</p>
    </div>
    <div class="doc-body">
{{.Body}}
    </div>
  </div>
</div>
<footer class="site-footer">
  {{.Site.Project}} &nbsp;&middot;&nbsp; {{.Site.Notice}}
</footer>
</body>
</html>`

var shellTemplate = template.Must(template.New("page").Parse(shell))

type shellData struct {
	Title string
	Site  Site
	CSS   template.CSS
	Body  template.HTML
}

// Render writes the complete page. The body must be markup produced by the
// renderer; title and site strings are escaped.
func Render(w io.Writer, title, body string, site Site) error {
	site = site.withDefaults()
	css := stylesheet
	if site.ExtraCSS != "" {
		css += "\n" + site.ExtraCSS + "\n"
	}
	data := shellData{
		Title: title,
		Site:  site,
		CSS:   template.CSS(css),
		Body:  template.HTML(body),
	}
	if err := shellTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// RenderString returns the complete page as a string
func RenderString(title, body string, site Site) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, title, body, site); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// TitleFromPath derives a page title from a document path: the base name
// without ".docx", with underscores and hyphens shown as spaces
func TitleFromPath(path string) string {
	title := filepath.Base(path)
	title = strings.ReplaceAll(title, ".docx", "")
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return title
}
