package dictionary

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Paris,CITY",
		"flight,TRANSPORT,e",
		"paris,CITY_ANY,i",
		`"to (\w+)",DEST,r,1`,
	}, "\n")

	rules, err := Parse(strings.NewReader(input), quiet())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Rule{
		{Pattern: "Paris", Label: "CITY", Mode: ExactMatch},
		{Pattern: "flight", Label: "TRANSPORT", Mode: ExactMatch},
		{Pattern: "paris", Label: "CITY_ANY", Mode: IgnoreCase},
		{Pattern: `to (\w+)`, Label: "DEST", Mode: Regex, Group: "1"},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Errorf("rules = %+v, want %+v", rules, want)
	}
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single field", "loner\nParis,CITY", 1},
		{"empty pattern", ",CITY\nParis,CITY", 1},
		{"empty label", "Paris,\nParis,CITY", 1},
		{"whitespace pattern", "   ,CITY\nParis,CITY", 1},
		{"blank lines ignored", "\n\nParis,CITY\n\n", 1},
		{"all malformed", "loner\n,X", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := Parse(strings.NewReader(tc.input), quiet())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(rules) != tc.want {
				t.Errorf("got %d rules (%+v), want %d", len(rules), rules, tc.want)
			}
		})
	}
}

func TestParse_ModeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mode
	}{
		{"missing column", "Paris,CITY", ExactMatch},
		{"empty column", "Paris,CITY,", ExactMatch},
		{"unrecognized value", "Paris,CITY,x", ExactMatch},
		{"uppercase value", "Paris,CITY,I", IgnoreCase},
		{"padded value", "Paris,CITY, r ", Regex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := Parse(strings.NewReader(tc.input), quiet())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(rules) != 1 {
				t.Fatalf("got %d rules, want 1", len(rules))
			}
			if rules[0].Mode != tc.want {
				t.Errorf("mode = %v, want %v", rules[0].Mode, tc.want)
			}
		})
	}
}

func TestParse_DuplicatePatterns(t *testing.T) {
	input := strings.Join([]string{
		"Paris,CITY",
		"Paris,TOWN",       // same pattern and mode: skipped
		"Paris,CITY_ANY,i", // same pattern, different mode: kept
	}, "\n")

	rules, err := Parse(strings.NewReader(input), quiet())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Rule{
		{Pattern: "Paris", Label: "CITY", Mode: ExactMatch},
		{Pattern: "Paris", Label: "CITY_ANY", Mode: IgnoreCase},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Errorf("rules = %+v, want %+v", rules, want)
	}
}

func TestParse_MaxLabelLength(t *testing.T) {
	input := strings.Join([]string{
		"Paris,VERYLONGLABEL",
		"flight,SHORT",
	}, "\n")

	rules, err := Parse(strings.NewReader(input), quiet(), WithMaxLabelLength(5))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rules) != 1 || rules[0].Label != "SHORT" {
		t.Errorf("rules = %+v, want only SHORT", rules)
	}

	// Zero means no limit.
	rules, err = Parse(strings.NewReader(input), quiet(), WithMaxLabelLength(0))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rules) != 2 {
		t.Errorf("got %d rules with no limit, want 2", len(rules))
	}
}

func TestParse_Empty(t *testing.T) {
	rules, err := Parse(strings.NewReader(""), quiet())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.csv")
	if err := os.WriteFile(path, []byte("Paris,CITY\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := ParseFile(path, quiet())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("got %d rules, want 1", len(rules))
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv"), quiet())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"e", ExactMatch},
		{"i", IgnoreCase},
		{"r", Regex},
		{"", ExactMatch},
		{"regex", ExactMatch},
	}
	for _, tc := range tests {
		if got := ParseMode(tc.in); got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ExactMatch, "exact"},
		{IgnoreCase, "ignore_case"},
		{Regex, "regex"},
	}
	for _, tc := range tests {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
}
