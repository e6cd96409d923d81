package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tenebris-tech/x2html/config"
	"github.com/tenebris-tech/x2html/convert"
	"github.com/tenebris-tech/x2html/docx2html"
	"github.com/tenebris-tech/x2html/docx2html/transform"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("x2html", flag.ContinueOnError)
	flags.SetOutput(stderr)

	recursive := flags.Bool("r", false, "Recursively process directories")
	outputDir := flags.String("output-dir", "", "Output directory for converted files (flat structure)")
	outputFile := flags.String("output", "", "Output file path (single file mode only)")
	skipExisting := flags.Bool("skip-existing", false, "Skip files whose output already exists")
	format := flags.String("format", "", "Output format: html or md (default html)")
	bodyOnly := flags.Bool("body-only", false, "Write the body fragment without the page shell")
	title := flags.String("title", "", "Page title (default: derived from the file name)")
	configPath := flags.String("config", "", "YAML configuration file")
	verbose := flags.Bool("v", false, "Show file disposition (converted/skipped/error)")
	debug := flags.Bool("d", false, "Debug output (includes style counts and table roles)")

	flags.Usage = func() { printUsage(flags, stderr) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Debug implies verbose
	if *debug {
		*verbose = true
	}

	inputPath := flags.Arg(0)
	if inputPath == "" {
		printUsage(flags, stderr)
		return 1
	}
	// A second positional argument names the output file
	if *outputFile == "" && flags.NArg() > 1 {
		*outputFile = flags.Arg(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags given on the command line win over the configuration
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["output-dir"] {
		cfg.Output.Directory = *outputDir
	}
	if set["skip-existing"] {
		cfg.Output.SkipExisting = *skipExisting
	}
	if set["format"] {
		cfg.Output.Format = strings.ToLower(*format)
	}
	if set["body-only"] {
		cfg.Output.BodyOnly = *bodyOnly
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level := cfg.Level()
	if *verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	docxOpts := cfg.ConverterOptions()
	docxOpts = append(docxOpts, docx2html.WithLogger(logger))
	if *title != "" {
		docxOpts = append(docxOpts, docx2html.WithTitle(*title))
	}

	// Add debug callbacks (-d: detailed processing info)
	if *debug {
		docxOpts = append(docxOpts,
			docx2html.WithOnDocumentParsed(func() {
				fmt.Fprintln(stdout, "  Document parsed")
			}),
			docx2html.WithOnStylesParsed(func(count int) {
				fmt.Fprintf(stdout, "  Styles: %d\n", count)
			}),
			docx2html.WithOnTableClassified(func(index int, shape transform.Shape, role transform.Role) {
				fmt.Fprintf(stdout, "  Table %d: %dx%d fill=%s -> %s\n",
					index, shape.Rows, shape.Cols, shapeFill(shape), role)
			}),
		)
	}

	// Handle single file with explicit output path
	if *outputFile != "" && !*recursive {
		info, err := os.Stat(inputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if info.IsDir() {
			fmt.Fprintf(stderr, "Error: -output cannot be used with directories\n")
			return 1
		}

		if *verbose {
			fmt.Fprintf(stdout, "Converting: %s\n", inputPath)
		}
		if err := convertSingleFile(inputPath, *outputFile, cfg.Output.Format, docxOpts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if *debug {
			printOutline(stdout, inputPath, docxOpts)
		}
		fmt.Fprintf(stdout, "Done: %s\n", *outputFile)
		return 0
	}

	converterOpts := []convert.Option{
		convert.WithRecursion(*recursive),
		convert.WithSkipExisting(cfg.Output.SkipExisting),
		convert.WithFormat(cfg.Output.Format),
		convert.WithLogger(logger),
		convert.WithDOCXOptions(docxOpts...),
	}
	if cfg.Output.Directory != "" {
		converterOpts = append(converterOpts, convert.WithOutputDirectory(cfg.Output.Directory))
	}

	// Add verbose callbacks (-v: one line per file)
	if *verbose {
		converterOpts = append(converterOpts,
			convert.WithOnFileComplete(func(path, outputPath string, err error) {
				if err != nil {
					fmt.Fprintf(stdout, "Error: %s: %v\n", path, err)
				} else {
					fmt.Fprintf(stdout, "Converted: %s -> %s\n", path, outputPath)
				}
			}),
			convert.WithOnFileSkipped(func(path, outputPath, reason string) {
				fmt.Fprintf(stdout, "Skipped: %s (%s)\n", path, reason)
			}),
		)
	}

	result, err := convert.New(converterOpts...).Convert(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *recursive || *verbose {
		fmt.Fprintf(stdout, "\nComplete: %d converted, %d skipped, %d failed\n",
			result.Converted, result.Skipped, result.Failed)
	} else if result.Converted > 0 {
		fmt.Fprintln(stdout, "Conversion complete!")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(stderr, "Error: %v\n", e)
	}

	if result.Failed > 0 {
		return 1
	}
	return 0
}

func printUsage(flags *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: x2html [options] <input.docx|directory> [output.html]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converts DOCX files to styled HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flags.PrintDefaults()
}

// printOutline reports the element and class census of the rendered body
func printOutline(w io.Writer, inputPath string, docxOpts []docx2html.Option) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return
	}
	opts := append(docxOpts[:len(docxOpts):len(docxOpts)],
		docx2html.WithOnDocumentParsed(nil),
		docx2html.WithOnStylesParsed(nil),
		docx2html.WithOnTableClassified(nil),
	)
	outline, err := docx2html.New(opts...).Outline(data)
	if err != nil {
		return
	}
	for _, line := range strings.Split(outline.String(), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func shapeFill(s transform.Shape) string {
	if !s.Fill.IsSet() {
		return "none"
	}
	return s.Fill.Hex()
}

func convertSingleFile(inputPath, outputPath, format string, docxOpts []docx2html.Option) error {
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".docx" {
		return fmt.Errorf("unsupported file type: %s (supported: .docx)", ext)
	}

	converter := docx2html.New(docxOpts...)
	if format != config.FormatMarkdown {
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
