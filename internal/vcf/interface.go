// Package vcf provides VCF file parsing and writing functionality.
package vcf

// RecordReader is the interface for sources that yield VCF records.
// Consumers take this rather than *Reader so that tests can feed headers
// and records from in-memory fixtures.
type RecordReader interface {
	// Header returns the parsed header of the source.
	Header() *Header

	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// Close closes the source and releases resources.
	Close() error
}
