package trace

import (
	"bufio"
	"fmt"
	"io"
)

// A Reader reads trace records from a text stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next record. It returns io.EOF at the end of the stream.
func (r *Reader) Next() (Access, error) {
	for r.scanner.Scan() {
		r.line++

		a, ok, err := ParseLine(r.scanner.Text())
		if err != nil {
			return Access{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		if ok {
			a.Line = r.line
			return a, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Access{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}

	return Access{}, io.EOF
}

// ReadAll reads all the remaining records.
func (r *Reader) ReadAll() ([]Access, error) {
	var records []Access

	for {
		a, err := r.Next()
		if err == io.EOF {
			return records, nil
		}

		if err != nil {
			return records, err
		}

		records = append(records, a)
	}
}
