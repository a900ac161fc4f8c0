// Package transfer moves per-record INFO values into per-sample FORMAT fields.
package transfer

import (
	"sort"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

// FieldType is the storage kind of a relocated field.
type FieldType int

const (
	TypeFlag FieldType = iota
	TypeInteger
	TypeFloat
	TypeString
)

func (t FieldType) String() string {
	switch t {
	case TypeFlag:
		return "Flag"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeString:
		return "String"
	}
	return "Unknown"
}

// fieldTypeOf maps a header declaration type to its storage kind. Only the
// four relocatable kinds are accepted; anything else fails the plan.
func fieldTypeOf(declType string) (FieldType, bool) {
	switch declType {
	case "Flag":
		return TypeFlag, true
	case "Integer":
		return TypeInteger, true
	case "Float":
		return TypeFloat, true
	case "String":
		return TypeString, true
	}
	return 0, false
}

// QualID is the FORMAT id under which the record quality score is stored
// when quality relocation is enabled.
const QualID = "QUAL"

var qualDecl = vcf.FieldDecl{
	ID:          QualID,
	Number:      "1",
	Type:        "Float",
	Description: "Phred-scaled quality score for the assertion made in ALT",
}

// Plan is the frozen outcome of the schema rewrite: which fields move,
// their resolved types, and the header the output is serialized against.
// A Plan is immutable once built.
type Plan struct {
	fields map[string]FieldType
	ids    []string // sorted field ids
	qual   bool
	header *vcf.Header
}

// BuildPlan validates the input header and produces the rewritten schema
// for a run. The requested INFO declarations are removed and re-declared
// as FORMAT fields with unchanged id, number and description; the quality
// declaration, if requested, is appended last. The source header is not
// modified.
//
// The header must declare exactly one sample. Every requested id must be
// declared as an INFO field of type Flag, Integer, Float or String;
// missing ids are reported together after the full header scan.
func BuildPlan(src *vcf.Header, fields []string, qual bool) (*Plan, error) {
	if n := src.SampleCount(); n != 1 {
		return nil, &SampleCountError{Count: n}
	}

	requested := make(map[string]bool, len(fields))
	for _, id := range fields {
		requested[id] = true
	}

	p := &Plan{
		fields: make(map[string]FieldType, len(requested)),
		qual:   qual,
		header: src.Clone(),
	}

	// Scan in declaration order so relocated FORMAT lines keep a stable,
	// input-derived order. Only the first declaration of an id moves.
	for _, d := range src.InfoDecls() {
		if !requested[d.ID] {
			continue
		}
		ft, ok := fieldTypeOf(d.Type)
		if !ok {
			return nil, &UnknownTypeError{ID: d.ID, Type: d.Type}
		}
		delete(requested, d.ID)
		p.header.RemoveInfo(d.ID)
		p.header.AppendFormat(d)
		p.fields[d.ID] = ft
	}

	if len(requested) > 0 {
		missing := make([]string, 0, len(requested))
		for id := range requested {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return nil, &MissingFieldsError{IDs: missing}
	}

	if qual {
		p.header.AppendFormat(qualDecl)
	}

	p.ids = make([]string, 0, len(p.fields))
	for id := range p.fields {
		p.ids = append(p.ids, id)
	}
	sort.Strings(p.ids)

	return p, nil
}

// Header returns the rewritten schema records are serialized against.
func (p *Plan) Header() *vcf.Header {
	return p.header
}

// IDs returns the planned field ids in sorted order.
func (p *Plan) IDs() []string {
	return p.ids
}

// FieldType returns the resolved type of a planned field id.
func (p *Plan) FieldType(id string) (FieldType, bool) {
	ft, ok := p.fields[id]
	return ft, ok
}

// Qual reports whether the plan includes quality relocation.
func (p *Plan) Qual() bool {
	return p.qual
}
