package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// scanBufSize caps the length of one input line.
const scanBufSize = 16 * 1024 * 1024

// ConvertOptions controls plain-text-to-record conversion. The zero value
// concatenates each file into a single record with no length limit.
type ConvertOptions struct {
	// OneDocPerLine creates one record per non-blank input line.
	OneDocPerLine bool
	// MaxExampleLen caps example length in code points. Zero means no limit.
	// Lines longer than the cap are skipped.
	MaxExampleLen int
	// AutoSplit starts a new record once accumulated content would reach
	// MaxExampleLen. Without it, files larger than the cap are skipped by
	// ConvertFiles.
	AutoSplit bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o ConvertOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// ConvertFile converts one plain-text file into a corpus file at outPath.
// Blank lines are skipped; over-long lines are skipped when a cap is set.
// Without OneDocPerLine, lines accumulate into one record joined by newlines,
// split at the cap when AutoSplit is on.
func ConvertFile(inPath, outPath string, opts ConvertOptions) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer func() { _ = f.Close() }()

	var recs []Record
	var content string
	blank, long := 0, 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			blank++
			continue
		}
		if opts.MaxExampleLen > 0 && utf8.RuneCountInString(line) > opts.MaxExampleLen {
			long++
			continue
		}
		if opts.OneDocPerLine {
			recs = append(recs, NewRecord(line))
			continue
		}
		// >= leaves room for the joining newline.
		if opts.AutoSplit && opts.MaxExampleLen > 0 && content != "" &&
			utf8.RuneCountInString(content)+utf8.RuneCountInString(line) >= opts.MaxExampleLen {
			recs = append(recs, NewRecord(content))
			content = ""
		}
		if content == "" {
			content = line
		} else {
			content += "\n" + line
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	if content != "" {
		recs = append(recs, NewRecord(content))
	}

	if err := WriteFile(outPath, recs); err != nil {
		return err
	}
	opts.logger().Info("converted file",
		"in", inPath, "out", outPath, "records", len(recs),
		"blank_lines", blank, "long_lines", long)
	return nil
}

// ConvertFiles converts each input into a .jsonl file under outDir and
// returns the output paths. Inputs already ending in .jsonl are copied
// through unchanged. Output name collisions get a numeric suffix. When a
// length cap is set and AutoSplit is off, files larger than the cap are
// skipped with a notice.
func ConvertFiles(paths []string, outDir string, opts ConvertOptions) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	nameCount := make(map[string]int)
	var outputs []string
	for _, p := range paths {
		base := filepath.Base(p)
		ext := filepath.Ext(base)
		root := strings.TrimSuffix(base, ext)

		nameCount[root]++
		name := root + ".jsonl"
		if n := nameCount[root]; n > 1 {
			name = fmt.Sprintf("%s%d.jsonl", root, n)
		}
		out := filepath.Join(outDir, name)

		if ext == ".jsonl" {
			if err := copyFile(p, out); err != nil {
				return nil, err
			}
			outputs = append(outputs, out)
			continue
		}

		if !opts.OneDocPerLine && opts.MaxExampleLen > 0 && !opts.AutoSplit {
			info, err := os.Stat(p)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", p, err)
			}
			// Byte size is an upper bound on code points.
			if info.Size() > int64(opts.MaxExampleLen) {
				opts.logger().Info("skipped oversized file; rerun with splitting enabled",
					"path", p, "size", info.Size(), "max_example_len", opts.MaxExampleLen)
				continue
			}
		}
		if err := ConvertFile(p, out, opts); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
