package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bcsgh/tbd"
	"github.com/bcsgh/tbd/internal/tbdconfig"
	"gopkg.in/yaml.v3"
)

// validateFilePath performs the same path-traversal and extension checks
// the original tool's file-reading entry point did, adapted to this
// language's own extension.
func validateFilePath(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid path: path traversal detected")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}
	if relPath, err := filepath.Rel(cwd, absPath); err != nil || strings.HasPrefix(relPath, "..") {
		return fmt.Errorf("invalid path: file must be within current directory")
	}

	if ext := strings.ToLower(filepath.Ext(absPath)); ext != ".tbd" {
		return fmt.Errorf("invalid file extension: expected .tbd")
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("invalid path: expected file, got directory")
	}

	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	return nil
}

// readDocument validates and reads filename, returning its source text.
func readDocument(filename string) (string, error) {
	if err := validateFilePath(filename); err != nil {
		return "", fmt.Errorf("invalid file: %w", err)
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(src), nil
}

// compile loads the merged config defaults and runs the full pipeline
// over filename's contents, every subcommand's shared first step.
func compile(ctx context.Context, filename string, dumpUnits bool) (*tbd.Result, bool, error) {
	src, err := readDocument(filename)
	if err != nil {
		return nil, false, err
	}

	cfg, err := tbdconfig.Load()
	if err != nil {
		return nil, false, fmt.Errorf("load config: %w", err)
	}

	opts := tbd.Options{
		IterationLimit:   cfg.IterationLimit,
		WarningsAsErrors: cfg.WarningsAsErrors,
		DumpUnits:        dumpUnits || cfg.DumpUnits,
		NewtonIterations: cfg.NewtonIterations,
		NewtonTolerance:  cfg.NewtonTolerance,
	}
	slog.Debug("compiling document", "file", filename, "iteration_limit", opts.IterationLimit,
		"newton_iterations", opts.NewtonIterations, "newton_tolerance", opts.NewtonTolerance)

	result, ok := tbd.Compile(ctx, filename, src, opts)
	if result.Stage != nil {
		slog.Debug("pipeline finished", "file", filename, "residual_dof", result.Stage.Count, "ok", ok)
	}
	return result, ok, nil
}

// printDiagnostics writes every collected diagnostic to stderr, one per line.
func printDiagnostics(result *tbd.Result) {
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.Error())
	}
}

// renderSummary is the machine-readable form of a renderer subcommand's
// (graphviz, gen) single text artifact: a run identifier plus the
// rendered content, so a --format=yaml caller can correlate output back
// to the run it came from.
type renderSummary struct {
	File    string `yaml:"file"`
	RunID   string `yaml:"run_id"`
	Kind    string `yaml:"kind"`
	Content string `yaml:"content"`
}

// emitRendered writes content to stdout, either bare (the default text
// form) or wrapped in a renderSummary document when format is "yaml".
func emitRendered(result *tbd.Result, filename, kind, content, format string) error {
	switch format {
	case "", "text":
		fmt.Print(content)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(renderSummary{
			File:    filename,
			RunID:   result.RunID.String(),
			Kind:    kind,
			Content: content,
		})
	default:
		return fmt.Errorf("unknown --format %q (want text or yaml)", format)
	}
}
