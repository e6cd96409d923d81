// Package convert provides batch conversion of DOCX documents to HTML pages.
// It wraps the docx2html package and adds recursive directory traversal,
// output naming and output directory management.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tenebris-tech/x2html/docx2html"
)

// ErrIsDirectory is returned when a directory is given without recursion
var ErrIsDirectory = errors.New("input is a directory")

// Output formats
const (
	FormatHTML     = "html"
	FormatMarkdown = "md"
)

// DefaultExtensions lists the file extensions supported by default
var DefaultExtensions = []string{".docx"}

// Converter handles batch document conversion
type Converter struct {
	options *Options
	// Track visited directories and files to avoid loops and duplicates
	visitedDirs    map[string]bool
	processedFiles map[string]bool
}

// Options holds configuration for the converter
type Options struct {
	// Recursion enables recursive directory traversal
	Recursion bool

	// Extensions lists file extensions to convert (default: .docx)
	Extensions []string

	// SkipExisting skips files whose output already exists (default: true)
	SkipExisting bool

	// OutputDirectory writes all output files to this directory (flat structure)
	// If empty, output files are placed next to source files
	OutputDirectory string

	// Format selects the output format: "html" (default) or "md"
	Format string

	// Logger receives per-file progress
	Logger *slog.Logger

	// DOCXOptions are passed to the DOCX converter
	DOCXOptions []docx2html.Option

	// OnFileStart is called when starting to convert a file
	OnFileStart func(path string)

	// OnFileComplete is called when a file conversion completes
	OnFileComplete func(path, outputPath string, err error)

	// OnFileSkipped is called when a file is skipped (e.g., output already exists)
	OnFileSkipped func(path, outputPath, reason string)
}

// Result contains the results of a conversion operation
type Result struct {
	Converted int
	Skipped   int
	Failed    int
	Errors    []error
}

// Option is a functional option for configuring the converter
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		Recursion:    false,
		Extensions:   DefaultExtensions,
		SkipExisting: true,
		Format:       FormatHTML,
	}
}

// WithRecursion enables or disables recursive directory traversal
func WithRecursion(recursive bool) Option {
	return func(o *Options) {
		o.Recursion = recursive
	}
}

// WithExtensions sets the file extensions to convert
func WithExtensions(exts []string) Option {
	return func(o *Options) {
		// Normalize extensions to lowercase with leading dot
		normalized := make([]string, len(exts))
		for i, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized[i] = ext
		}
		o.Extensions = normalized
	}
}

// WithSkipExisting sets whether to skip files whose output already exists
func WithSkipExisting(skip bool) Option {
	return func(o *Options) {
		o.SkipExisting = skip
	}
}

// WithOutputDirectory sets the output directory for converted files
func WithOutputDirectory(dir string) Option {
	return func(o *Options) {
		o.OutputDirectory = dir
	}
}

// WithFormat sets the output format ("html" or "md")
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = strings.ToLower(format)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDOCXOptions sets options to pass to the DOCX converter
func WithDOCXOptions(opts ...docx2html.Option) Option {
	return func(o *Options) {
		o.DOCXOptions = opts
	}
}

// WithOnFileStart sets the callback for when file conversion starts
func WithOnFileStart(callback func(path string)) Option {
	return func(o *Options) {
		o.OnFileStart = callback
	}
}

// WithOnFileComplete sets the callback for when file conversion completes
func WithOnFileComplete(callback func(path, outputPath string, err error)) Option {
	return func(o *Options) {
		o.OnFileComplete = callback
	}
}

// WithOnFileSkipped sets the callback for when a file is skipped
func WithOnFileSkipped(callback func(path, outputPath, reason string)) Option {
	return func(o *Options) {
		o.OnFileSkipped = callback
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
		options:        options,
		visitedDirs:    make(map[string]bool),
		processedFiles: make(map[string]bool),
	}
}

// Convert converts a file or directory.
// If path is a file, it converts that file.
// If path is a directory and Recursion is enabled, it recursively converts all matching files.
// Returns ErrIsDirectory if path is a directory and Recursion is disabled.
func (c *Converter) Convert(path string) (*Result, error) {
	switch c.options.Format {
	case FormatHTML, FormatMarkdown:
	default:
		return nil, fmt.Errorf("unknown output format %q", c.options.Format)
	}

	// Reset tracking maps for each Convert call
	c.visitedDirs = make(map[string]bool)
	c.processedFiles = make(map[string]bool)

	result := &Result{}

	// Get file info, following symlinks
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if info.IsDir() && !c.options.Recursion {
		return nil, fmt.Errorf("%s: %w; use WithRecursion(true) to process directories", path, ErrIsDirectory)
	}

	// Create output directory if specified
	if c.options.OutputDirectory != "" {
		if err := os.MkdirAll(c.options.OutputDirectory, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	if info.IsDir() {
		c.walkDir(path, result)
	} else {
		c.processFile(path, result)
	}

	c.options.Logger.Info("conversion finished",
		"converted", result.Converted,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// walkDir recursively walks a directory, following symlinks
func (c *Converter) walkDir(dir string, result *Result) {
	// Resolve to real path to detect loops
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot resolve %s: %w", dir, err))
		return
	}

	// Check if we've already visited this real directory
	if c.visitedDirs[realDir] {
		c.options.Logger.Debug("directory already visited", "dir", dir)
		return
	}
	c.visitedDirs[realDir] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot read directory %s: %w", dir, err))
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Get file info, following symlinks
		info, err := os.Stat(path)
		if err != nil {
			// Only count as failure if it looks like a convertible file
			ext := strings.ToLower(filepath.Ext(path))
			if c.hasExtension(ext) {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Errorf("cannot access %s: %w", path, err))
			}
			// Silently skip broken symlinks to directories or non-convertible files
			continue
		}

		if info.IsDir() {
			c.walkDir(path, result)
		} else {
			c.processFile(path, result)
		}
	}
}

// processFile converts a single file if it matches the configured extensions
func (c *Converter) processFile(path string, result *Result) {
	ext := strings.ToLower(filepath.Ext(path))
	if !c.hasExtension(ext) {
		return
	}

	// Word lock files (~$name.docx) are not documents
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot resolve %s: %w", path, err))
		return
	}

	// Skip if we've already processed this real file
	if c.processedFiles[realPath] {
		return
	}
	c.processedFiles[realPath] = true

	outputPath, skip, reason := c.getOutputPath(realPath)
	if skip {
		c.options.Logger.Info("skipped", "input", realPath, "output", outputPath, "reason", reason)
		if c.options.OnFileSkipped != nil {
			c.options.OnFileSkipped(realPath, outputPath, reason)
		}
		result.Skipped++
		return
	}

	if c.options.OnFileStart != nil {
		c.options.OnFileStart(realPath)
	}

	convErr := c.convertDOCX(realPath, outputPath)

	if c.options.OnFileComplete != nil {
		c.options.OnFileComplete(realPath, outputPath, convErr)
	}

	if convErr != nil {
		c.options.Logger.Warn("conversion failed", "input", realPath, "error", convErr)
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", realPath, convErr))
	} else {
		c.options.Logger.Info("converted", "input", realPath, "output", outputPath)
		result.Converted++
	}
}

// hasExtension checks if the given extension is in the configured list
func (c *Converter) hasExtension(ext string) bool {
	for _, e := range c.options.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// getOutputPath determines the output path for a given input file.
// Returns the output path, whether to skip the file, and the skip reason.
func (c *Converter) getOutputPath(inputPath string) (string, bool, string) {
	name := OutputName(inputPath, c.options.Format)

	var outputPath string
	if c.options.OutputDirectory != "" {
		outputPath = filepath.Join(c.options.OutputDirectory, name)
	} else {
		outputPath = filepath.Join(filepath.Dir(inputPath), name)
	}

	if _, err := os.Stat(outputPath); err == nil {
		if c.options.SkipExisting {
			return outputPath, true, "output file exists"
		}
		outputPath = c.findUniquePath(outputPath)
	}

	return outputPath, false, ""
}

// findUniquePath finds a unique output path by appending a number
func (c *Converter) findUniquePath(basePath string) string {
	ext := filepath.Ext(basePath)
	nameWithoutExt := strings.TrimSuffix(basePath, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", nameWithoutExt, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// OutputName returns the default output file name for an input document:
// the base name without ".docx", spaces replaced by hyphens, lower-cased,
// with the format's extension.
func OutputName(inputPath, format string) string {
	name := filepath.Base(inputPath)
	name = strings.ReplaceAll(name, ".docx", "")
	name = strings.ReplaceAll(name, " ", "-")
	name = cases.Lower(language.Und).String(name)
	if format == FormatMarkdown {
		return name + ".md"
	}
	return name + ".html"
}

// convertDOCX converts a DOCX file in the configured format
func (c *Converter) convertDOCX(inputPath, outputPath string) error {
	opts := append([]docx2html.Option{docx2html.WithLogger(c.options.Logger)}, c.options.DOCXOptions...)
	converter := docx2html.New(opts...)

	if c.options.Format != FormatMarkdown {
		return converter.ConvertFileToFile(inputPath, outputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	md, err := converter.ConvertMarkdown(data)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(md), 0644)
}
