package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read decodes all records from a line-delimited JSON stream.
func Read(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var recs []Record
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", len(recs)+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadFile decodes all records from the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer func() { _ = f.Close() }()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return recs, nil
}

// Write encodes records one per line.
func Write(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding record %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile writes records to the file at path, replacing it.
func WriteFile(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}
	if err := Write(f, recs); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
