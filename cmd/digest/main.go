// Package main digests one local PDF or image and prints the result.
// Usage: digest [-length short|medium|long] [-output text|json] FILE
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docdigest/internal/app"
	"docdigest/internal/config"
	"docdigest/internal/domain/entity"
	"docdigest/internal/infra/summarizer"
	"docdigest/internal/observability/logging"
)

const usage = "Usage: digest [-length short|medium|long] [-output text|json] FILE"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command line.
type options struct {
	length string
	output string
	path   string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.length, "length", string(entity.DefaultLengthTier), "Summary length: short, medium or long")
	fs.StringVar(&opts.output, "output", "text", "Output format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.output != "text" && opts.output != "json" {
		return nil, fmt.Errorf("invalid output format %q (must be 'text' or 'json')", opts.output)
	}
	if fs.NArg() != 1 {
		return nil, errors.New("exactly one FILE is required")
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n\n%s\n", err, usage)
		}
		return exitUsage
	}

	logger := logging.NewLogger(stderr, logging.FormatText)
	slog.SetDefault(logger)

	kind, ok := entity.SourceKindFromFilename(opts.path)
	if !ok {
		fmt.Fprintf(stderr, "Error: Invalid file type %q. Please provide a PDF or image file.\n", filepath.Ext(opts.path))
		return exitError
	}
	tier, valid := entity.ParseLengthTier(opts.length)
	if !valid {
		logger.Warn("unknown summary length, using default",
			slog.String("length", opts.length),
			slog.String("default", string(tier)))
	}

	// #nosec G304 -- the path is the operator's own command line argument
	data, err := os.ReadFile(opts.path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	pipelineCfg, err := config.LoadPipelineConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	modelCfg, err := summarizer.LoadModelConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	pipeline := app.New(pipelineCfg, modelCfg, logger)
	defer func() { _ = pipeline.Model.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), pipelineCfg.RequestTimeout)
	defer cancel()

	result, err := pipeline.Service.Process(ctx, entity.Document{Data: data, Kind: kind, Name: filepath.Base(opts.path)}, tier)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyText) {
			fmt.Fprintln(stderr, "Error: No readable text found in the document.")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitError
	}

	if opts.output == "json" {
		err = writeJSON(stdout, result)
	} else {
		err = writeText(stdout, result)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to write output: %v\n", err)
		return exitError
	}
	return exitOK
}

// writeText prints the result in human-readable form. Highlights are shown
// with the plain summary; the marked-up fields are meant for HTML clients.
func writeText(w io.Writer, r *entity.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary (%s):\n%s\n\n", r.Length, r.Summary)
	fmt.Fprintf(&b, "Statistics:\n")
	fmt.Fprintf(&b, "  Original: %d words, %d characters\n", r.Stats.TotalWords, r.Stats.TotalChars)
	fmt.Fprintf(&b, "  Summary:  %d words (%.2f%% of the original)\n", r.Stats.SummaryWords, r.Stats.SummaryPercentage)
	if len(r.Suggestions) > 0 {
		fmt.Fprintf(&b, "\nSuggestions:\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeJSON prints the result as indented JSON without HTML escaping.
func writeJSON(w io.Writer, r *entity.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
