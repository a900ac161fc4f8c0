// Package transfer moves per-record INFO values into per-sample FORMAT fields.
package transfer

import (
	"fmt"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

// tagValue is one captured INFO value awaiting re-insertion as a FORMAT
// field. Exactly one of the value slices is set, per kind; flags are
// stored as a single 0/1 integer.
type tagValue struct {
	id     string
	kind   FieldType
	ints   []int32
	floats []float32
	strs   []string
}

// Transform relocates the planned values of one record in place: each
// planned INFO field is read, cleared from the INFO column, and stored as
// a FORMAT value for the sole sample. The record is re-associated with the
// plan's rewritten header.
//
// Flags always produce a FORMAT value, 1 when present and 0 when not.
// Other kinds are only stored when the record carries the field; an
// absent field leaves no FORMAT value behind. With quality relocation
// enabled the QUAL column is stored last as a one-element Float.
func (p *Plan) Transform(rec *vcf.Record) error {
	captured := make([]tagValue, 0, len(p.ids)+1)

	for _, id := range p.ids {
		switch p.fields[id] {
		case TypeFlag:
			var v int32
			if rec.InfoFlag(id) {
				v = 1
			}
			rec.ClearInfo(id)
			captured = append(captured, tagValue{id: id, kind: TypeFlag, ints: []int32{v}})

		case TypeInteger:
			vals, ok, err := rec.InfoInts(id)
			if err != nil {
				return fmt.Errorf("extract INFO %s: %w", id, err)
			}
			if !ok {
				continue
			}
			rec.ClearInfo(id)
			captured = append(captured, tagValue{id: id, kind: TypeInteger, ints: vals})

		case TypeFloat:
			vals, ok, err := rec.InfoFloats(id)
			if err != nil {
				return fmt.Errorf("extract INFO %s: %w", id, err)
			}
			if !ok {
				continue
			}
			rec.ClearInfo(id)
			captured = append(captured, tagValue{id: id, kind: TypeFloat, floats: vals})

		case TypeString:
			vals, ok, err := rec.InfoStrings(id)
			if err != nil {
				return fmt.Errorf("extract INFO %s: %w", id, err)
			}
			if !ok {
				continue
			}
			rec.ClearInfo(id)
			captured = append(captured, tagValue{id: id, kind: TypeString, strs: vals})
		}
	}

	rec.SetHeader(p.header)

	for _, v := range captured {
		var err error
		switch v.kind {
		case TypeFlag, TypeInteger:
			err = rec.PushFormatInts(v.id, v.ints)
		case TypeFloat:
			err = rec.PushFormatFloats(v.id, v.floats)
		case TypeString:
			err = rec.PushFormatStrings(v.id, v.strs)
		}
		if err != nil {
			return fmt.Errorf("store FORMAT %s: %w", v.id, err)
		}
	}

	if p.qual {
		q := float32(rec.Qual)
		if rec.QualMissing {
			q = vcf.MissingFloat32
		}
		if err := rec.PushFormatFloats(QualID, []float32{q}); err != nil {
			return fmt.Errorf("store FORMAT %s: %w", QualID, err)
		}
	}

	return nil
}
