// Package config carries run-level settings as an explicit value passed into
// each operation. There is no process-wide state; every limit is an explicit
// field where zero means "no limit".
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration that cannot produce a valid run.
var ErrInvalid = errors.New("config: invalid configuration")

// Duration parses YAML scalars like "2s" via time.ParseDuration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is one run's settings.
type Config struct {
	// DictionaryPath locates the pattern dictionary. Empty skips annotation.
	DictionaryPath string `yaml:"dictionary"`
	// OutputDir receives converted corpus files and exports.
	OutputDir string `yaml:"output_dir"`
	// Format selects the export strategy (csv, entities, biluo).
	Format string `yaml:"format"`
	// OneDocPerLine converts each input line into its own example.
	OneDocPerLine bool `yaml:"one_doc_per_line"`
	// SkipBlank drops unannotated examples from exports.
	SkipBlank bool `yaml:"skip_blank"`
	// Split breaks oversized examples at MaxExampleLen during conversion.
	Split bool `yaml:"split"`
	// MaxExampleLen caps example length in code points. Zero means no limit.
	MaxExampleLen int `yaml:"max_example_len"`
	// MaxLabelLength caps a label's leading word token. Zero means no limit.
	MaxLabelLength int `yaml:"max_label_length"`
	// MaxAnnotationTokens flags annotations with more whitespace tokens.
	// Zero disables the check.
	MaxAnnotationTokens int `yaml:"max_annotation_tokens"`
	// MatchTimeout bounds matching one rule against one example.
	// Zero disables the bound.
	MatchTimeout Duration `yaml:"match_timeout"`
	// Workers is the annotation concurrency across examples.
	Workers int `yaml:"workers"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Format:              "csv",
		OneDocPerLine:       true,
		SkipBlank:           true,
		MaxAnnotationTokens: 10,
		MatchTimeout:        Duration(2 * time.Second),
		Workers:             runtime.NumCPU(),
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports fatal configuration errors. Splitting without an example
// length cap cannot work; negative limits are meaningless.
func (c Config) Validate() error {
	if c.Split && c.MaxExampleLen <= 0 {
		return fmt.Errorf("%w: split requires max_example_len", ErrInvalid)
	}
	if c.MaxExampleLen < 0 {
		return fmt.Errorf("%w: max_example_len must be >= 0", ErrInvalid)
	}
	if c.MaxLabelLength < 0 {
		return fmt.Errorf("%w: max_label_length must be >= 0", ErrInvalid)
	}
	if c.MaxAnnotationTokens < 0 {
		return fmt.Errorf("%w: max_annotation_tokens must be >= 0", ErrInvalid)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("%w: match_timeout must be >= 0", ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0", ErrInvalid)
	}
	return nil
}
