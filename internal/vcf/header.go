// Package vcf provides VCF file parsing and writing functionality.
package vcf

import (
	"fmt"
	"strings"
)

// Declaration namespaces within the header.
const (
	declInfo   = "INFO"
	declFormat = "FORMAT"
)

// FieldDecl describes one ##INFO or ##FORMAT declaration from a VCF header.
type FieldDecl struct {
	ID          string // unique field name
	Number      string // cardinality descriptor, kept verbatim (1, A, R, G, .)
	Type        string // Flag, Integer, Float, String, Character
	Description string // free text without the surrounding quotes
}

// metaLine renders the declaration as a ##INFO=<...> or ##FORMAT=<...> line.
func (d *FieldDecl) metaLine(namespace string) string {
	return fmt.Sprintf("##%s=<ID=%s,Number=%s,Type=%s,Description=\"%s\">",
		namespace, d.ID, d.Number, d.Type, d.Description)
}

// headerLine is one ## meta line with its parsed declaration, if any.
type headerLine struct {
	raw       string // full line text without trailing newline
	namespace string // declInfo, declFormat, or "" for other meta lines
	decl      *FieldDecl
}

// Header models the meta lines, column header line, and samples of a VCF.
// Untouched lines round-trip byte-identically; only relocated declarations
// are re-formatted.
type Header struct {
	lines   []headerLine
	columns string // the #CHROM line, verbatim
	samples []string
}

// addMetaLine parses and appends one ## header line.
// INFO and FORMAT declarations must carry at least ID and Type.
func (h *Header) addMetaLine(line string) error {
	for _, ns := range []string{declInfo, declFormat} {
		prefix := "##" + ns + "=<"
		if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, ">") {
			continue
		}
		d, err := parseFieldDecl(line[len(prefix) : len(line)-1])
		if err != nil {
			return fmt.Errorf("%s declaration: %w", ns, err)
		}
		h.lines = append(h.lines, headerLine{raw: line, namespace: ns, decl: d})
		return nil
	}

	h.lines = append(h.lines, headerLine{raw: line})
	return nil
}

// setColumns stores the #CHROM line and extracts sample names from the
// columns after FORMAT (index 9+).
func (h *Header) setColumns(line string) {
	h.columns = line
	fields := strings.Split(line, "\t")
	if len(fields) > 9 {
		h.samples = fields[9:]
	}
}

// SampleCount returns the number of samples declared in the #CHROM line.
func (h *Header) SampleCount() int {
	return len(h.samples)
}

// Samples returns the sample names from the #CHROM line.
// Returns nil if no sample columns are present.
func (h *Header) Samples() []string {
	return h.samples
}

// Info returns the first INFO declaration with the given id, or nil.
func (h *Header) Info(id string) *FieldDecl {
	return h.decl(declInfo, id)
}

// Format returns the first FORMAT declaration with the given id, or nil.
func (h *Header) Format(id string) *FieldDecl {
	return h.decl(declFormat, id)
}

func (h *Header) decl(namespace, id string) *FieldDecl {
	for _, l := range h.lines {
		if l.namespace == namespace && l.decl.ID == id {
			return l.decl
		}
	}
	return nil
}

// InfoDecls returns all INFO declarations in source order.
func (h *Header) InfoDecls() []FieldDecl {
	return h.decls(declInfo)
}

// FormatDecls returns all FORMAT declarations in source order.
func (h *Header) FormatDecls() []FieldDecl {
	return h.decls(declFormat)
}

func (h *Header) decls(namespace string) []FieldDecl {
	var out []FieldDecl
	for _, l := range h.lines {
		if l.namespace == namespace {
			out = append(out, *l.decl)
		}
	}
	return out
}

// Clone returns a copy of the header that can be rewritten without
// affecting the original. Declarations are never mutated after parsing,
// so sharing them between copies is safe.
func (h *Header) Clone() *Header {
	c := &Header{
		lines:   make([]headerLine, len(h.lines)),
		columns: h.columns,
		samples: append([]string(nil), h.samples...),
	}
	copy(c.lines, h.lines)
	return c
}

// RemoveInfo removes the first INFO declaration with the given id.
// Reports whether a declaration was removed.
func (h *Header) RemoveInfo(id string) bool {
	for i, l := range h.lines {
		if l.namespace == declInfo && l.decl.ID == id {
			h.lines = append(h.lines[:i], h.lines[i+1:]...)
			return true
		}
	}
	return false
}

// AppendFormat appends a FORMAT declaration as a formatted meta line.
// If the id is already declared as a FORMAT field, the existing
// declaration is kept and the call is a no-op.
func (h *Header) AppendFormat(d FieldDecl) {
	if h.Format(d.ID) != nil {
		return
	}
	decl := d
	h.lines = append(h.lines, headerLine{
		raw:       decl.metaLine(declFormat),
		namespace: declFormat,
		decl:      &decl,
	})
}

// Lines returns all header lines in order: the ## meta lines followed by
// the #CHROM column line.
func (h *Header) Lines() []string {
	out := make([]string, 0, len(h.lines)+1)
	for _, l := range h.lines {
		out = append(out, l.raw)
	}
	out = append(out, h.columns)
	return out
}

// parseFieldDecl parses the key=value body of a declaration line, i.e. the
// text between the angle brackets. Quoted values may contain commas and
// backslash-escaped quotes; escape sequences are preserved verbatim.
func parseFieldDecl(body string) (*FieldDecl, error) {
	d := &FieldDecl{Number: "."}

	for rest := body; rest != ""; {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed key=value pair %q", rest)
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := closingQuote(rest)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quoted value for %s", key)
			}
			value = rest[1:end]
			rest = strings.TrimPrefix(rest[end+1:], ",")
		} else if comma := strings.IndexByte(rest, ','); comma >= 0 {
			value = rest[:comma]
			rest = rest[comma+1:]
		} else {
			value = rest
			rest = ""
		}

		switch key {
		case "ID":
			d.ID = value
		case "Number":
			d.Number = value
		case "Type":
			d.Type = value
		case "Description":
			d.Description = value
		}
	}

	if d.ID == "" {
		return nil, fmt.Errorf("missing ID")
	}
	if d.Type == "" {
		return nil, fmt.Errorf("missing Type")
	}
	return d, nil
}

// closingQuote returns the index of the closing quote in s, which must
// start with an opening quote, honoring backslash escapes. Returns -1 if
// the value is unterminated.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
