package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tenebris-tech/x2html/config"
	"github.com/tenebris-tech/x2html/convert"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: x2html-batch <directory> [config.yaml]")
		fmt.Println()
		fmt.Println("Recursively converts all DOCX files to HTML pages.")
		fmt.Println("Follows symlinks to directories.")
		fmt.Println("Skips files that already have an .html version.")
		fmt.Println("Tracks real paths to avoid duplicate work and loops.")
		os.Exit(1)
	}

	startDir := os.Args[1]
	configPath := ""
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	info, err := os.Stat(startDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", startDir)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	opts := []convert.Option{
		convert.WithRecursion(true),
		convert.WithSkipExisting(true),
		convert.WithFormat(cfg.Output.Format),
		convert.WithLogger(logger),
		convert.WithDOCXOptions(cfg.ConverterOptions()...),
		convert.WithOnFileStart(func(path string) {
			fmt.Printf("Converting: %s\n", path)
		}),
		convert.WithOnFileComplete(func(path, outputPath string, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
				return
			}
			fmt.Printf("  Created: %s\n", outputPath)
		}),
	}
	if cfg.Output.Directory != "" {
		opts = append(opts, convert.WithOutputDirectory(cfg.Output.Directory))
	}

	result, err := convert.New(opts...).Convert(startDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Complete: %d converted, %d skipped (already exist), %d failed\n",
		result.Converted, result.Skipped, result.Failed)

	if result.Failed > 0 {
		os.Exit(1)
	}
}
