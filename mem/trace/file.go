package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression is the encoding of a trace file, chosen by its extension.
type Compression int

// The supported encodings.
const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionSnappy
)

// CompressionOf returns the encoding implied by the file name: ".lz4" for LZ4
// frames, ".sz" or ".snappy" for framed Snappy, anything else for plain text.
func CompressionOf(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".sz", ".snappy":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// A File is a Reader on a trace file that must be closed after use.
type File struct {
	*Reader

	closers []func() error
}

// OpenFile opens a trace file. Plain text files are memory-mapped where the
// platform allows it.
func OpenFile(path string) (*File, error) {
	compression := CompressionOf(path)

	if compression == CompressionNone {
		data, release, err := mapFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace %s: %w", path, err)
		}

		return &File{
			Reader:  NewReader(bytes.NewReader(data)),
			closers: []func() error{release},
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace %s: %w", path, err)
	}

	var r io.Reader
	if compression == CompressionLZ4 {
		r = lz4.NewReader(f)
	} else {
		r = snappy.NewReader(f)
	}

	return &File{
		Reader:  NewReader(r),
		closers: []func() error{f.Close},
	}, nil
}

// Close releases the file.
func (f *File) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c())
	}

	f.closers = nil

	return errors.Join(errs...)
}

// A FileWriter is a Writer on a trace file. Close flushes and closes it.
type FileWriter struct {
	*Writer

	closers []func() error
}

// CreateFile creates a trace file, compressed according to its extension.
func CreateFile(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace %s: %w", path, err)
	}

	fw := &FileWriter{}

	switch CompressionOf(path) {
	case CompressionLZ4:
		zw := lz4.NewWriter(f)
		fw.Writer = NewWriter(zw)
		fw.closers = []func() error{zw.Close, f.Close}
	case CompressionSnappy:
		zw := snappy.NewBufferedWriter(f)
		fw.Writer = NewWriter(zw)
		fw.closers = []func() error{zw.Close, f.Close}
	default:
		fw.Writer = NewWriter(f)
		fw.closers = []func() error{f.Close}
	}

	return fw, nil
}

// Close flushes the buffered records, finishes the compressed stream, and
// closes the file.
func (w *FileWriter) Close() error {
	errs := []error{w.Flush()}
	for _, c := range w.closers {
		errs = append(errs, c())
	}

	w.closers = nil

	return errors.Join(errs...)
}
