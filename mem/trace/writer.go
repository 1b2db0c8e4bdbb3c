package trace

import (
	"bufio"
	"io"
)

// A Writer writes trace records as text.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer on w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one record.
func (w *Writer) Write(a Access) error {
	if _, err := w.w.WriteString(a.String()); err != nil {
		return err
	}

	return w.w.WriteByte('\n')
}

// Comment appends a comment line.
func (w *Writer) Comment(text string) error {
	_, err := w.w.WriteString("# " + text + "\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
