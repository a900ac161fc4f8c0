package transfer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

// DefaultProgressEvery is the record interval at which progress is logged.
const DefaultProgressEvery = 10000

// Runner drives one full relocation run: validate the configuration, plan
// the schema rewrite from the input header, open the destination, and
// stream every record through the transform. Any failure aborts the run;
// there is no per-record recovery.
type Runner struct {
	fields        []string
	qual          bool
	progressEvery int
	logger        *zap.Logger
}

// NewRunner creates a runner that relocates the given INFO fields, plus
// the record quality score when qual is set.
func NewRunner(fields []string, qual bool) *Runner {
	return &Runner{
		fields:        fields,
		qual:          qual,
		progressEvery: DefaultProgressEvery,
		logger:        zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and completion messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// SetProgressEvery sets the record interval for progress logging.
// An interval of 0 or less disables progress logging.
func (r *Runner) SetProgressEvery(n int) {
	r.progressEvery = n
}

// Run streams every record from in through the relocation and serializes
// it to the destination returned by open. The destination is only opened
// once planning has succeeded, so a failed run does not touch it. Returns
// the number of records written.
//
// Record-level errors carry the 1-based ordinal of the offending record.
func (r *Runner) Run(in vcf.RecordReader, open OpenOutput) (int, error) {
	if len(r.fields) == 0 && !r.qual {
		return 0, ErrNoFields
	}

	plan, err := BuildPlan(in.Header(), r.fields, r.qual)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("schema plan built",
		zap.Strings("fields", plan.IDs()),
		zap.Bool("qual", plan.Qual()))

	out, err := open()
	if err != nil {
		return 0, fmt.Errorf("open output: %w", err)
	}
	if err := out.WriteHeader(plan.Header()); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	count := 0
	for {
		rec, err := in.Next()
		if err != nil {
			return count, fmt.Errorf("record %d: %w", count+1, err)
		}
		if rec == nil {
			break
		}

		if err := plan.Transform(rec); err != nil {
			return count, fmt.Errorf("record %d: %w", count+1, err)
		}
		if err := out.Write(rec); err != nil {
			return count, fmt.Errorf("record %d: write: %w", count+1, err)
		}
		count++

		if r.progressEvery > 0 && count%r.progressEvery == 0 {
			r.logger.Info("progress", zap.Int("records", count))
		}
	}

	if err := out.Flush(); err != nil {
		return count, fmt.Errorf("flush output: %w", err)
	}

	r.logger.Info("transfer complete", zap.Int("records", count))
	return count, nil
}

// RecordWriter defines the interface for serializing the rewritten header
// and the transformed records.
type RecordWriter interface {
	WriteHeader(h *vcf.Header) error
	Write(rec *vcf.Record) error
	Flush() error
}

// OpenOutput opens the destination for a run. The runner calls it exactly
// once, after planning succeeds and before the first record is read.
type OpenOutput func() (RecordWriter, error)
