package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/transfer"
	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

func newTransferCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Relocate INFO fields into the sample column",
		Long: `Relocate the requested INFO fields of a single-sample VCF into FORMAT
fields. The rewritten header declares each moved field under FORMAT with
its original number, type and description. Flag fields always produce a
value, 1 when the flag was set and 0 when it was not; other fields only
produce a value on records that carry them.

With --qual the QUAL column is additionally stored as a Float FORMAT
field named QUAL on every record.`,
		Example: `  # Move DP and SOMATIC into the FORMAT column
  vcf-info2format transfer -f DP -f SOMATIC -i input.vcf -o output.vcf

  # Also keep the quality score as a FORMAT field
  vcf-info2format transfer -f DP -q -i input.vcf.gz -o output.vcf.gz

  # Read stdin, write stdout
  cat input.vcf | vcf-info2format transfer -f DP`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := viper.GetStringSlice("transfer.fields")
			qual := viper.GetBool("transfer.qual")
			progressEvery := viper.GetInt("transfer.progress-every")

			// Checked before any input is opened.
			if len(fields) == 0 && !qual {
				return transfer.ErrNoFields
			}

			return runTransfer(inputPath, outputPath, fields, qual, progressEvery)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Input VCF file (use '-' for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Output VCF file (use '-' for stdout)")
	cmd.Flags().StringSliceP("fields", "f", nil, "INFO field to relocate (repeatable or comma-separated)")
	cmd.Flags().BoolP("qual", "q", false, "Also store the QUAL column as a FORMAT field")
	cmd.Flags().Int("progress-every", transfer.DefaultProgressEvery, "Log progress every N records (0 disables)")

	viper.BindPFlag("transfer.fields", cmd.Flags().Lookup("fields"))
	viper.BindPFlag("transfer.qual", cmd.Flags().Lookup("qual"))
	viper.BindPFlag("transfer.progress-every", cmd.Flags().Lookup("progress-every"))

	return cmd
}

func runTransfer(inputPath, outputPath string, fields []string, qual bool, progressEvery int) error {
	logger := newLogger()
	defer logger.Sync()

	in, err := vcf.NewReader(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	runner := transfer.NewRunner(fields, qual)
	runner.SetLogger(logger)
	runner.SetProgressEvery(progressEvery)

	// The destination is only opened once the header checks passed, so a
	// failed run does not truncate an existing output file.
	var out *vcf.Writer
	_, err = runner.Run(in, func() (transfer.RecordWriter, error) {
		w, oerr := vcf.NewWriter(outputPath)
		if oerr != nil {
			return nil, oerr
		}
		out = w
		return w, nil
	})
	if err != nil {
		if out != nil {
			out.Close()
		}
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
