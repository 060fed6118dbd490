// Package patternio reads and writes the persisted pattern artifacts owned
// by the CLI layer: a target pattern JSON document (one object with the nine
// axis values) and a JSONL stream of measured-pattern records, one object
// per line. The core stays free of file formats; everything funnels through
// strict pattern validation on the way in.
package patternio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kiloran/phenrv/internal/domain/pattern"
)

// DecodeTarget reads one target pattern document from r.
func DecodeTarget(r io.Reader) (pattern.Pattern, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var p pattern.Pattern
	if err := dec.Decode(&p); err != nil {
		return pattern.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := p.Validate(); err != nil {
		return pattern.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return p, nil
}

// ReadTargetFile reads a target pattern document from path.
func ReadTargetFile(path string) (pattern.Pattern, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator's own CLI flag
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("open target: %w", err)
	}
	defer f.Close()
	return DecodeTarget(f)
}

// StreamDecoder iterates a JSONL stream of measured-pattern records.
type StreamDecoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewStreamDecoder wraps r for line-by-line decoding.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{scanner: bufio.NewScanner(r)}
}

// Next returns the next measured pattern. Blank lines are skipped. io.EOF
// signals the end of the stream; any other error is terminal.
func (d *StreamDecoder) Next() (pattern.Pattern, error) {
	for d.scanner.Scan() {
		d.line++
		raw := bytes.TrimSpace(d.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		var p pattern.Pattern
		if err := dec.Decode(&p); err != nil {
			return pattern.Pattern{}, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, d.line, err)
		}
		if err := p.Validate(); err != nil {
			return pattern.Pattern{}, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, d.line, err)
		}
		return p, nil
	}
	if err := d.scanner.Err(); err != nil {
		return pattern.Pattern{}, fmt.Errorf("read stream: %w", err)
	}
	return pattern.Pattern{}, io.EOF
}

// Line reports the line number of the most recently decoded record.
func (d *StreamDecoder) Line() int {
	return d.line
}

// ReadMeasuredFile reads a whole JSONL file of measured patterns.
func ReadMeasuredFile(path string) ([]pattern.Pattern, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator's own CLI flag
	if err != nil {
		return nil, fmt.Errorf("open measured stream: %w", err)
	}
	defer f.Close()

	var out []pattern.Pattern
	dec := NewStreamDecoder(f)
	for {
		p, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
}

// WriteJSON writes v to w as an indented JSON document. Used for emitting
// derived target patterns and simulation results.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
