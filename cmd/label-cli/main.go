// Command label-cli converts plain-text corpora into annotation records,
// labels them with a pattern dictionary, and exports training data.
//
// Usage: label-cli -mode MODE [OPTIONS] FILE...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/corpus"
	"github.com/jamesainslie/go-label/dictionary"
	"github.com/jamesainslie/go-label/export"
	"github.com/jamesainslie/go-label/internal/config"
)

func main() {
	var (
		mode          = flag.String("mode", "pipeline", "Mode: convert, annotate, export, or pipeline")
		configPath    = flag.String("config", "", "Path to YAML config file (flags override)")
		dictPath      = flag.String("dictionary", "", "Path to pattern dictionary CSV")
		outDir        = flag.String("out", "out", "Output directory")
		format        = flag.String("format", "", "Export format: csv, entities, or biluo")
		split         = flag.Bool("split", false, "Split oversized examples during conversion")
		maxLen        = flag.Int("max-length", 0, "Maximum example length in code points (0 = no limit)")
		oneDocPerLine = flag.Bool("one-doc-per-line", true, "One example per input line")
		skipBlank     = flag.Bool("skip-blank", true, "Skip unannotated examples in exports")
		maxLabelLen   = flag.Int("max-label-length", 0, "Maximum label word length (0 = no limit)")
		maxTokens     = flag.Int("max-tokens", -1, "Annotation token count warning limit (0 = no limit)")
		timeout       = flag.Duration("timeout", -1, "Per-rule match timeout (0 = no limit)")
		workers       = flag.Int("workers", 0, "Annotation workers (0 = one per CPU)")
		verbose       = flag.Bool("v", false, "Verbose (debug) logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: label-cli -mode MODE [OPTIONS] FILE...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	// Explicitly set flags take precedence over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dictionary":
			cfg.DictionaryPath = *dictPath
		case "out":
			cfg.OutputDir = *outDir
		case "format":
			cfg.Format = *format
		case "split":
			cfg.Split = *split
		case "max-length":
			cfg.MaxExampleLen = *maxLen
		case "one-doc-per-line":
			cfg.OneDocPerLine = *oneDocPerLine
		case "skip-blank":
			cfg.SkipBlank = *skipBlank
		case "max-label-length":
			cfg.MaxLabelLength = *maxLabelLen
		case "max-tokens":
			cfg.MaxAnnotationTokens = *maxTokens
		case "timeout":
			cfg.MatchTimeout = config.Duration(*timeout)
		case "workers":
			cfg.Workers = *workers
		}
	})
	if cfg.OutputDir == "" {
		cfg.OutputDir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, *mode, cfg, flag.Args(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string, cfg config.Config, inputs []string, logger *slog.Logger) error {
	switch mode {
	case "convert":
		_, err := convert(cfg, inputs, logger)
		return err
	case "annotate":
		return annotate(ctx, cfg, inputs, logger)
	case "export":
		return exportFiles(cfg, inputs)
	case "pipeline":
		files, err := convert(cfg, inputs, logger)
		if err != nil {
			return err
		}
		if err := annotate(ctx, cfg, files, logger); err != nil {
			return err
		}
		return exportFiles(cfg, files)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func convert(cfg config.Config, inputs []string, logger *slog.Logger) ([]string, error) {
	return corpus.ConvertFiles(inputs, cfg.OutputDir, corpus.ConvertOptions{
		OneDocPerLine: cfg.OneDocPerLine,
		MaxExampleLen: cfg.MaxExampleLen,
		AutoSplit:     cfg.Split,
		Logger:        logger,
	})
}

func annotate(ctx context.Context, cfg config.Config, files []string, logger *slog.Logger) error {
	if cfg.DictionaryPath == "" {
		logger.Info("no dictionary configured; skipping annotation")
		return nil
	}
	rules, err := dictionary.ParseFile(cfg.DictionaryPath,
		dictionary.WithLogger(logger),
		dictionary.WithMaxLabelLength(cfg.MaxLabelLength),
	)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		logger.Info("dictionary has no usable rules; skipping annotation")
		return nil
	}

	l := label.New(rules,
		label.WithLogger(logger),
		label.WithMaxAnnotationTokens(cfg.MaxAnnotationTokens),
		label.WithMatchTimeout(time.Duration(cfg.MatchTimeout)),
	)
	return corpus.AnnotateFiles(ctx, l, files, cfg.Workers)
}

func exportFiles(cfg config.Config, files []string) error {
	if cfg.Format == "" {
		return nil
	}
	exp, err := export.New(cfg.Format, cfg.SkipBlank)
	if err != nil {
		return err
	}

	var recs []corpus.Record
	for _, path := range files {
		fileRecs, err := corpus.ReadFile(path)
		if err != nil {
			return err
		}
		recs = append(recs, fileRecs...)
	}

	outPath := filepath.Join(cfg.OutputDir, "labels."+export.Ext(cfg.Format))
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := exp.Export(f, recs); err != nil {
		_ = f.Close()
		return fmt.Errorf("exporting to %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}
	slog.Default().Info("exported", "path", outPath, "format", cfg.Format, "records", len(recs))
	return nil
}
