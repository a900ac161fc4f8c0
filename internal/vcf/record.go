// Package vcf provides VCF file parsing and writing functionality.
package vcf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingInt32 is the sentinel for a "." element in an Integer field.
const MissingInt32 int32 = math.MinInt32

// MissingFloat32 is the sentinel for a "." element in a Float field.
var MissingFloat32 = float32(math.NaN())

// InfoField is one key[=value] entry from a record's INFO column.
type InfoField struct {
	Key      string
	Value    string
	HasValue bool
}

// Record is one VCF data line. The fixed columns are exposed directly;
// the INFO, FORMAT and sample columns are kept in parsed form so they can
// be mutated and re-serialized without losing field order.
type Record struct {
	Chrom       string
	Pos         int64  // 1-based genomic position
	ID          string // variant identifier (e.g. rs ID)
	Ref         string
	Alt         string
	Qual        float64
	QualMissing bool // true when the QUAL column is "."
	Filter      string

	info    []InfoField
	format  []string   // FORMAT column keys in order
	samples [][]string // per sample, values parallel to format
	header  *Header
}

// Header returns the header the record is associated with.
func (r *Record) Header() *Header {
	return r.header
}

// SetHeader re-associates the record with a new header. Values already
// stored are not altered; FORMAT pushes validate against the new header
// from here on.
func (r *Record) SetHeader(h *Header) {
	r.header = h
}

// Info returns the record's INFO fields in order.
func (r *Record) Info() []InfoField {
	return append([]InfoField(nil), r.info...)
}

// InfoFlag reports whether the flag key is present in the INFO column.
func (r *Record) InfoFlag(key string) bool {
	return r.infoIndex(key) >= 0
}

// InfoInts extracts an Integer INFO field as 32-bit values. The second
// return reports whether the key is present on the record. A "." element
// maps to MissingInt32.
func (r *Record) InfoInts(key string) ([]int32, bool, error) {
	f, ok := r.infoField(key)
	if !ok {
		return nil, false, nil
	}
	if !f.HasValue {
		return nil, true, fmt.Errorf("INFO field %q has no value", key)
	}

	parts := strings.Split(f.Value, ",")
	out := make([]int32, len(parts))
	for i, p := range parts {
		if p == "." {
			out[i] = MissingInt32
			continue
		}
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, true, fmt.Errorf("INFO field %q: invalid integer %q", key, p)
		}
		out[i] = int32(n)
	}
	return out, true, nil
}

// InfoFloats extracts a Float INFO field as 32-bit values. The second
// return reports whether the key is present on the record. A "." element
// maps to MissingFloat32.
func (r *Record) InfoFloats(key string) ([]float32, bool, error) {
	f, ok := r.infoField(key)
	if !ok {
		return nil, false, nil
	}
	if !f.HasValue {
		return nil, true, fmt.Errorf("INFO field %q has no value", key)
	}

	parts := strings.Split(f.Value, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		if p == "." {
			out[i] = MissingFloat32
			continue
		}
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, true, fmt.Errorf("INFO field %q: invalid float %q", key, p)
		}
		out[i] = float32(v)
	}
	return out, true, nil
}

// InfoStrings extracts a String INFO field as its comma-separated values,
// verbatim. The second return reports whether the key is present on the
// record.
func (r *Record) InfoStrings(key string) ([]string, bool, error) {
	f, ok := r.infoField(key)
	if !ok {
		return nil, false, nil
	}
	if !f.HasValue {
		return nil, true, fmt.Errorf("INFO field %q has no value", key)
	}
	return strings.Split(f.Value, ","), true, nil
}

// ClearInfo removes the key from the INFO column. Clearing an absent key
// is a no-op and reports false.
func (r *Record) ClearInfo(key string) bool {
	i := r.infoIndex(key)
	if i < 0 {
		return false
	}
	r.info = append(r.info[:i], r.info[i+1:]...)
	return true
}

func (r *Record) infoIndex(key string) int {
	for i := range r.info {
		if r.info[i].Key == key {
			return i
		}
	}
	return -1
}

func (r *Record) infoField(key string) (InfoField, bool) {
	if i := r.infoIndex(key); i >= 0 {
		return r.info[i], true
	}
	return InfoField{}, false
}

// FormatKeys returns the record's FORMAT column keys in order.
func (r *Record) FormatKeys() []string {
	return append([]string(nil), r.format...)
}

// FormatValue returns the serialized FORMAT value of the first sample for
// the given key. Keys dropped from the end of a sample column read as ".".
func (r *Record) FormatValue(key string) (string, bool) {
	for i, k := range r.format {
		if k != key {
			continue
		}
		if len(r.samples) == 0 {
			return "", false
		}
		if i < len(r.samples[0]) {
			return r.samples[0][i], true
		}
		return ".", true
	}
	return "", false
}

// PushFormatInts stores 32-bit integer values as a FORMAT field for the
// sole sample. The associated header must declare the field as Integer or
// Flag; flags are stored as integers.
func (r *Record) PushFormatInts(key string, values []int32) error {
	if err := r.checkFormatType(key, "Integer", "Flag"); err != nil {
		return err
	}
	return r.pushFormat(key, joinInts(values))
}

// PushFormatFloats stores 32-bit float values as a FORMAT field for the
// sole sample.
func (r *Record) PushFormatFloats(key string, values []float32) error {
	if err := r.checkFormatType(key, "Float"); err != nil {
		return err
	}
	return r.pushFormat(key, joinFloats(values))
}

// PushFormatStrings stores string values as a FORMAT field for the sole
// sample.
func (r *Record) PushFormatStrings(key string, values []string) error {
	if err := r.checkFormatType(key, "String", "Character"); err != nil {
		return err
	}
	return r.pushFormat(key, strings.Join(values, ","))
}

// checkFormatType verifies that the record's header declares the FORMAT
// field with one of the accepted types.
func (r *Record) checkFormatType(key string, accepted ...string) error {
	if r.header == nil {
		return fmt.Errorf("record is not associated with a header")
	}
	d := r.header.Format(key)
	if d == nil {
		return fmt.Errorf("FORMAT field %q is not declared in the header", key)
	}
	for _, t := range accepted {
		if d.Type == t {
			return nil
		}
	}
	return fmt.Errorf("FORMAT field %q is declared as %s", key, d.Type)
}

// pushFormat stores a serialized value for the sole sample, creating the
// FORMAT column if the record has none. A key already present in the
// record's FORMAT column is overwritten in place. Sample columns shorter
// than the FORMAT column are padded with "." first.
func (r *Record) pushFormat(key, value string) error {
	if len(r.samples) == 0 {
		n := 0
		if r.header != nil {
			n = r.header.SampleCount()
		}
		if n == 0 {
			return fmt.Errorf("cannot store FORMAT field %q: header declares no samples", key)
		}
		r.samples = make([][]string, n)
	}

	idx := -1
	for i, k := range r.format {
		if k == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.format = append(r.format, key)
		idx = len(r.format) - 1
	}

	for s := range r.samples {
		for len(r.samples[s]) <= idx {
			r.samples[s] = append(r.samples[s], ".")
		}
	}
	r.samples[0][idx] = value
	return nil
}

// String serializes the record as a VCF data line without a trailing
// newline.
func (r *Record) String() string {
	var b strings.Builder
	b.Grow(128)

	b.WriteString(r.Chrom)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatInt(r.Pos, 10))
	b.WriteByte('\t')
	b.WriteString(r.ID)
	b.WriteByte('\t')
	b.WriteString(r.Ref)
	b.WriteByte('\t')
	b.WriteString(r.Alt)
	b.WriteByte('\t')
	if r.QualMissing {
		b.WriteByte('.')
	} else {
		b.WriteString(strconv.FormatFloat(r.Qual, 'g', -1, 64))
	}
	b.WriteByte('\t')
	b.WriteString(r.Filter)
	b.WriteByte('\t')
	if len(r.info) == 0 {
		b.WriteByte('.')
	}
	for i, f := range r.info {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(f.Key)
		if f.HasValue {
			b.WriteByte('=')
			b.WriteString(f.Value)
		}
	}
	if len(r.format) > 0 {
		b.WriteByte('\t')
		b.WriteString(strings.Join(r.format, ":"))
		for _, vals := range r.samples {
			b.WriteByte('\t')
			b.WriteString(strings.Join(vals, ":"))
		}
	}
	return b.String()
}

func joinInts(values []int32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == MissingInt32 {
			parts[i] = "."
			continue
		}
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, ",")
}

func joinFloats(values []float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if math.IsNaN(float64(v)) {
			parts[i] = "."
			continue
		}
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}
