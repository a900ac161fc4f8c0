// Package vcf provides VCF file parsing and writing functionality.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader reads the header and records of a VCF stream.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     *Header
}

// NewReader creates a reader for the given file, or for stdin when the
// path is "-". Supports both plain VCF and gzipped VCF (.vcf.gz, .vcf.bgz)
// input; compression is detected from the stream, not the file name.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r, err := NewReaderFromReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReaderFromReader creates a reader from an io.Reader (e.g. stdin).
func NewReaderFromReader(src io.Reader) (*Reader, error) {
	r := &Reader{}

	br := bufio.NewReader(src)
	// Check for the gzip magic number (0x1f, 0x8b); bgzip output carries
	// it as well.
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = br
	}

	if err := r.parseHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// parseHeader reads the ## meta lines and the #CHROM column line.
func (r *Reader) parseHeader() error {
	h := &Header{}
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read header: %w", err)
		}
		if line == "" && err == io.EOF {
			return &ParseError{Line: r.lineNumber, Message: "no #CHROM header line found"}
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			if merr := h.addMetaLine(line); merr != nil {
				return &ParseError{Line: r.lineNumber, Message: merr.Error()}
			}
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			h.setColumns(line)
			r.header = h
			return nil
		}

		// Non-header line encountered without #CHROM
		return &ParseError{Line: r.lineNumber, Message: "expected #CHROM header line"}
	}
}

// Header returns the parsed VCF header.
func (r *Reader) Header() *Header {
	return r.header
}

// Next reads the next record from the VCF stream.
// Returns nil, nil when there are no more records.
func (r *Reader) Next() (*Record, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read record line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err == io.EOF {
				return nil, nil
			}
			continue // skip empty lines
		}

		return r.parseRecord(line)
	}
}

// parseRecord parses a single VCF data line into a Record associated with
// the reader's header.
func (r *Reader) parseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	rec := &Record{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Filter: fields[6],
		info:   parseInfoColumn(fields[7]),
		header: r.header,
	}

	if fields[5] == "." {
		rec.QualMissing = true
	} else {
		rec.Qual, err = strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("invalid quality: %s", fields[5]),
			}
		}
	}

	// Capture FORMAT + sample columns if present
	if len(fields) > 8 {
		rec.format = strings.Split(fields[8], ":")
		for _, col := range fields[9:] {
			rec.samples = append(rec.samples, strings.Split(col, ":"))
		}
	}

	return rec, nil
}

// parseInfoColumn parses the INFO column preserving field order.
func parseInfoColumn(info string) []InfoField {
	if info == "." || info == "" {
		return nil
	}

	var out []InfoField
	for _, kv := range strings.Split(info, ";") {
		if kv == "" {
			continue
		}
		if eq := strings.IndexByte(kv, '='); eq >= 0 {
			out = append(out, InfoField{Key: kv[:eq], Value: kv[eq+1:], HasValue: true})
		} else {
			out = append(out, InfoField{Key: kv})
		}
	}
	return out
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
