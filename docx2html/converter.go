// Package docx2html provides a pure Go library to convert DOCX files to
// styled HTML pages
package docx2html

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/tenebris-tech/x2html/docx2html/docx"
	"github.com/tenebris-tech/x2html/docx2html/model"
	"github.com/tenebris-tech/x2html/docx2html/page"
	"github.com/tenebris-tech/x2html/docx2html/palette"
	"github.com/tenebris-tech/x2html/docx2html/transform"
)

// DefaultTitle is used when no title is set and none can be derived from a
// file name
const DefaultTitle = "Document"

// Converter is the main DOCX to HTML converter
type Converter struct {
	options  *Options
	markdown *converter.Converter
}

// Options holds configuration for the converter
type Options struct {
	// Title overrides the page title (default: derived from the file name)
	Title string

	// Site holds the shell strings
	Site page.Site

	// BodyOnly skips the page shell and emits the body fragment
	BodyOnly bool

	// Palette maps fills to classes (default: palette.Default())
	Palette *palette.Palette

	// GotRightCaption replaces the got-right-header caption
	GotRightCaption string

	// Logger receives conversion progress at Debug level
	Logger *slog.Logger

	// Callbacks for conversion progress
	OnDocumentParsed  func()
	OnStylesParsed    func(styleCount int)
	OnTableClassified func(index int, shape transform.Shape, role transform.Role)
}

// Option is a functional option for configuring the converter
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		Site:            page.DefaultSite(),
		Palette:         palette.Default(),
		GotRightCaption: transform.DefaultGotRightCaption,
	}
}

// WithTitle sets the page title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithSite sets the shell strings
func WithSite(site page.Site) Option {
	return func(o *Options) {
		o.Site = site
	}
}

// WithBodyOnly sets whether to emit only the body fragment
func WithBodyOnly(bodyOnly bool) Option {
	return func(o *Options) {
		o.BodyOnly = bodyOnly
	}
}

// WithPalette sets the fill palette
func WithPalette(p *palette.Palette) Option {
	return func(o *Options) {
		o.Palette = p
	}
}

// WithGotRightCaption sets the got-right-header caption
func WithGotRightCaption(caption string) Option {
	return func(o *Options) {
		o.GotRightCaption = caption
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithOnDocumentParsed sets the callback for document parsing
func WithOnDocumentParsed(callback func()) Option {
	return func(o *Options) {
		o.OnDocumentParsed = callback
	}
}

// WithOnStylesParsed sets the callback for styles parsing
func WithOnStylesParsed(callback func(styleCount int)) Option {
	return func(o *Options) {
		o.OnStylesParsed = callback
	}
}

// WithOnTableClassified sets the callback for each classified table
func WithOnTableClassified(callback func(index int, shape transform.Shape, role transform.Role)) Option {
	return func(o *Options) {
		o.OnTableClassified = callback
	}
}

// New creates a new Converter with the given options
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Converter{
		options:  options,
		markdown: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// ConvertFile converts a DOCX file to an HTML page. Unless a title is set,
// it is derived from the file name.
func (c *Converter) ConvertFile(inputPath string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return c.convert(data, c.titleFor(inputPath))
}

// ConvertFileToFile converts a DOCX file and writes the result to a file
func (c *Converter) ConvertFileToFile(inputPath, outputPath string) error {
	out, err := c.ConvertFile(inputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Convert converts DOCX data to an HTML page
func (c *Converter) Convert(data []byte) (string, error) {
	return c.convert(data, c.titleFor(""))
}

// ConvertBody converts DOCX data to the body fragment only
func (c *Converter) ConvertBody(data []byte) (string, error) {
	doc, err := c.Document(data)
	if err != nil {
		return "", err
	}
	return c.pipeline().Transform(doc), nil
}

// ConvertMarkdown converts DOCX data to Markdown by rendering the body and
// exporting it
func (c *Converter) ConvertMarkdown(data []byte) (string, error) {
	body, err := c.ConvertBody(data)
	if err != nil {
		return "", err
	}
	return c.Markdown(body)
}

// Markdown exports a rendered body fragment as Markdown
func (c *Converter) Markdown(body string) (string, error) {
	md, err := c.markdown.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("exporting markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

// Document parses DOCX data into the renderer's document model
func (c *Converter) Document(data []byte) (*model.Document, error) {
	parser, err := docx.NewParser(data)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX: %w", err)
	}

	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("validating DOCX: %w", err)
	}

	c.options.Logger.Debug("document parsed", "parts", len(parser.ListFiles()))
	if c.options.OnDocumentParsed != nil {
		c.options.OnDocumentParsed()
	}

	extractor, err := docx.NewExtractor(parser)
	if err != nil {
		return nil, fmt.Errorf("creating extractor: %w", err)
	}

	styleCount := extractor.GetStyles().Count()
	c.options.Logger.Debug("styles parsed", "count", styleCount)
	if c.options.OnStylesParsed != nil {
		c.options.OnStylesParsed(styleCount)
	}

	doc, err := extractor.Extract()
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}
	c.options.Logger.Debug("content extracted", "blocks", len(doc.Blocks))
	return doc, nil
}

func (c *Converter) convert(data []byte, title string) (string, error) {
	body, err := c.ConvertBody(data)
	if err != nil {
		return "", err
	}
	if c.options.BodyOnly {
		return body, nil
	}
	return page.RenderString(title, body, c.options.Site)
}

func (c *Converter) titleFor(inputPath string) string {
	if c.options.Title != "" {
		return c.options.Title
	}
	if inputPath != "" {
		return page.TitleFromPath(inputPath)
	}
	return DefaultTitle
}

func (c *Converter) pipeline() *transform.Pipeline {
	return transform.NewPipeline(&transform.PipelineOptions{
		Palette:           c.options.Palette,
		GotRightCaption:   c.options.GotRightCaption,
		Logger:            c.options.Logger,
		OnTableClassified: c.options.OnTableClassified,
	})
}
