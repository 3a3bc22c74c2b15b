//go:build ignore

// Strip Project Gutenberg boilerplate from raw downloads, producing plain
// text files ready for label-cli conversion.
// Usage: go run ./scripts/process-gutenberg.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var startMarkers = []string{
	"*** START OF THE PROJECT GUTENBERG EBOOK",
	"*** START OF THIS PROJECT GUTENBERG EBOOK",
	"*END*THE SMALL PRINT",
}

var endMarkers = []string{
	"*** END OF THE PROJECT GUTENBERG EBOOK",
	"*** END OF THIS PROJECT GUTENBERG EBOOK",
	"End of the Project Gutenberg EBook",
	"End of Project Gutenberg's",
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func main() {
	inDir := "testdata/gutenberg"

	files, err := filepath.Glob(filepath.Join(inDir, "*_raw.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No raw files found under", inDir)
		os.Exit(1)
	}

	for _, rawFile := range files {
		baseName := strings.TrimSuffix(filepath.Base(rawFile), "_raw.txt")
		outFile := filepath.Join(inDir, baseName+".txt")

		fmt.Printf("Processing %s...\n", baseName)
		if err := processBook(rawFile, outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", baseName, err)
			continue
		}
		fmt.Printf("  -> %s\n", outFile)
	}

	fmt.Println("\nDone! Corpus files created in", inDir)
}

func processBook(inPath, outPath string) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	text := string(content)

	startIdx := 0
	for _, marker := range startMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			if endOfLine := strings.Index(text[idx:], "\n"); endOfLine != -1 {
				startIdx = idx + endOfLine + 1
			}
			break
		}
	}

	endIdx := len(text)
	for _, marker := range endMarkers {
		if idx := strings.Index(text, marker); idx != -1 && idx > startIdx {
			endIdx = idx
			break
		}
	}

	body := text[startIdx:endIdx]
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = blankRuns.ReplaceAllString(body, "\n\n")
	body = strings.TrimSpace(body) + "\n"

	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
