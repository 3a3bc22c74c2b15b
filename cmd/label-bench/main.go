// Command label-bench scores a pattern dictionary against a gold-annotated
// corpus and prints precision/recall/F1.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/dictionary"
	"github.com/jamesainslie/go-label/internal/bench"
)

func main() {
	var (
		dictPath  = flag.String("dictionary", "", "Path to pattern dictionary CSV (required)")
		corpusDir = flag.String("corpus", "testdata/gold", "Directory containing gold .jsonl files")
		tolerance = flag.Int("tolerance", 0, "Code point tolerance for offset matching")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		byLabel   = flag.Bool("by-label", false, "Print per-label breakdown")
	)
	flag.Parse()

	if *dictPath == "" {
		fmt.Fprintln(os.Stderr, "error: -dictionary required")
		flag.Usage()
		os.Exit(1)
	}

	// Rule-level warnings would drown the metrics table.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	rules, err := dictionary.ParseFile(*dictPath, dictionary.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	files, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d gold files from %s\n\n", len(files), *corpusDir)

	cfg := bench.Config{
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	l := label.New(rules, label.WithLogger(logger))

	fmt.Printf("Evaluation (wp=%.1f, wr=%.1f, tolerance=%d)\n", *wp, *wr, *tolerance)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-20s %-8s %-8s %-8s %-8s\n", "File", "Prec", "Rec", "F1", "Weighted")

	var totalTP, totalFP, totalFN int
	for _, gf := range files {
		m := bench.EvaluateFile(l, gf, cfg)
		fmt.Printf("%-20s %-8.2f %-8.2f %-8.2f %-8.2f\n",
			gf.ID, m.Precision, m.Recall, m.F1, m.WeightedScore)
		totalTP += m.TruePositives
		totalFP += m.FalsePositives
		totalFN += m.FalseNegatives
	}

	fmt.Println(strings.Repeat("-", 60))
	printTotals(totalTP, totalFP, totalFN, cfg)

	if *byLabel {
		fmt.Println()
		printByLabel(l, files, cfg)
	}
}

func printTotals(tp, fp, fn int, cfg bench.Config) {
	var precision, recall, f1, weighted float64
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	if cfg.PrecisionWeight+cfg.RecallWeight > 0 {
		weighted = (cfg.PrecisionWeight*precision + cfg.RecallWeight*recall) /
			(cfg.PrecisionWeight + cfg.RecallWeight)
	}
	fmt.Printf("%-20s %-8.2f %-8.2f %-8.2f %-8.2f\n", "TOTAL", precision, recall, f1, weighted)
	fmt.Printf("TP=%d FP=%d FN=%d\n", tp, fp, fn)
}

func printByLabel(l *label.Labeler, files []*bench.GoldFile, cfg bench.Config) {
	perLabel := bench.EvaluateByLabel(l, files, cfg)

	labels := make([]string, 0, len(perLabel))
	for lbl := range perLabel {
		labels = append(labels, lbl)
	}
	sort.Strings(labels)

	fmt.Println("Per-label breakdown")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-20s %-8s %-8s %-8s\n", "Label", "Prec", "Rec", "F1")
	for _, lbl := range labels {
		m := perLabel[lbl]
		fmt.Printf("%-20s %-8.2f %-8.2f %-8.2f\n", lbl, m.Precision, m.Recall, m.F1)
	}
}
