// Package transfer moves per-record INFO values into per-sample FORMAT fields.
package transfer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields is returned when neither INFO fields nor quality relocation
// were requested. No input is read in that case.
var ErrNoFields = errors.New("no INFO fields requested and quality relocation disabled")

// SampleCountError reports an input that does not carry exactly one sample.
type SampleCountError struct {
	Count int
}

func (e *SampleCountError) Error() string {
	return fmt.Sprintf("input must contain exactly one sample, found %d", e.Count)
}

// MissingFieldsError reports requested ids that are not declared as INFO
// fields in the input header. IDs holds every missing id, sorted.
type MissingFieldsError struct {
	IDs []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("not declared as INFO in the header: %s", strings.Join(e.IDs, ", "))
}

// UnknownTypeError reports a requested INFO field declared with a type the
// relocation does not support.
type UnknownTypeError struct {
	ID   string
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("INFO field %s has unsupported type %s", e.ID, e.Type)
}
