// Package vcf provides VCF file parsing and writing functionality.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Writer serializes a header and records to a VCF destination.
type Writer struct {
	w          *bufio.Writer
	file       *os.File
	gzipWriter *gzip.Writer
}

// NewWriter creates a writer for the given file, or for stdout when the
// path is "-". Output is gzip-compressed when the path ends in ".gz".
func NewWriter(path string) (*Writer, error) {
	if path == "-" {
		return NewWriterTo(os.Stdout), nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create vcf file: %w", err)
	}

	w := &Writer{file: file}
	if strings.HasSuffix(path, ".gz") {
		w.gzipWriter = gzip.NewWriter(file)
		w.w = bufio.NewWriter(w.gzipWriter)
	} else {
		w.w = bufio.NewWriter(file)
	}
	return w, nil
}

// NewWriterTo creates a writer on an existing io.Writer (e.g. stdout).
func NewWriterTo(dst io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(dst)}
}

// WriteHeader writes all header lines.
func (w *Writer) WriteHeader(h *Header) error {
	for _, line := range h.Lines() {
		if _, err := w.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write serializes one record.
func (w *Writer) Write(r *Record) error {
	if _, err := w.w.WriteString(r.String()); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush flushes buffered output to the underlying destination.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.gzipWriter != nil {
		return w.gzipWriter.Flush()
	}
	return nil
}

// Close flushes and closes the writer. An underlying file is closed;
// stdout is left open.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.gzipWriter != nil {
		if err := w.gzipWriter.Close(); err != nil {
			return err
		}
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
