// Package dataset loads evaluation datasets stored as JSON Lines, one
// example object per line.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datar-psa/textmetrics/errorrate"
	"github.com/datar-psa/textmetrics/runner"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 4 << 20

// ReadPairs reads {"reference","hypothesis"} records.
func ReadPairs(r io.Reader) ([]errorrate.Pair, error) {
	var pairs []errorrate.Pair
	err := readLines(r, func(data []byte) error {
		var p errorrate.Pair
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		pairs = append(pairs, p)
		return nil
	})
	return pairs, err
}

// ReadCases reads {"name","input","expected","output"} records.
func ReadCases(r io.Reader) ([]runner.Case, error) {
	var cases []runner.Case
	err := readLines(r, func(data []byte) error {
		var c runner.Case
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		cases = append(cases, c)
		return nil
	})
	return cases, err
}

// ReadLabeled reads {"text","label","predicted"} records. label is required.
func ReadLabeled(r io.Reader) ([]runner.LabeledExample, error) {
	var examples []runner.LabeledExample
	err := readLines(r, func(data []byte) error {
		var ex runner.LabeledExample
		if err := json.Unmarshal(data, &ex); err != nil {
			return err
		}
		if ex.Label == "" {
			return errors.New("missing label")
		}
		examples = append(examples, ex)
		return nil
	})
	return examples, err
}

// LoadPairs reads a transcript dataset file.
func LoadPairs(path string) ([]errorrate.Pair, error) {
	return load(path, ReadPairs)
}

// LoadCases reads an evaluation case file.
func LoadCases(path string) ([]runner.Case, error) {
	return load(path, ReadCases)
}

// LoadLabeled reads a labeled example file.
func LoadLabeled(path string) ([]runner.LabeledExample, error) {
	return load(path, ReadLabeled)
}

func load[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// readLines calls fn for every non-blank line that is not a # comment.
func readLines(r io.Reader, fn func(data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn([]byte(text)); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan dataset: %w", err)
	}
	return nil
}
