package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [input]",
		Short: "List the INFO and FORMAT fields declared in a VCF header",
		Long: `Read the header of a VCF file and list its INFO and FORMAT field
declarations and its samples. Useful for picking the fields to pass to
the transfer command.`,
		Example: `  vcf-info2format fields input.vcf
  cat input.vcf | vcf-info2format fields`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			return runFields(path, cmd.OutOrStdout())
		},
	}
}

func runFields(path string, w io.Writer) error {
	r, err := vcf.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	hdr := r.Header()

	fmt.Fprintln(w, "INFO fields:")
	writeDecls(w, hdr.InfoDecls())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "FORMAT fields:")
	writeDecls(w, hdr.FormatDecls())

	samples := hdr.Samples()
	fmt.Fprintf(w, "\nSamples (%d): %s\n", len(samples), strings.Join(samples, ", "))
	return nil
}

func writeDecls(w io.Writer, decls []vcf.FieldDecl) {
	if len(decls) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, d := range decls {
		fmt.Fprintf(w, "  %-12s Number=%-3s Type=%-9s %s\n", d.ID, d.Number, d.Type, d.Description)
	}
}
