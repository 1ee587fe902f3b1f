package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dendrascience/crosshash/corpus"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates and returns the verify subcommand for the crosshash CLI.
// It re-canonicalizes every case of a corpus and checks the stored vectors.
func NewVerifyCmd() *cobra.Command {
	var (
		corpusPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "verify [PATH]",
		Short: "Verify a corpus directory or bundle",
		Long: `Verify a crosshash corpus for correctness and consistency.

PATH is a corpus directory written by seed, or a .zip bundle of one. Every
manifest entry is run through the canonicalizer again: its vector file must
exist under the name derived from its fingerprint, hold exactly the
canonical text of the input, and hash to the recorded fingerprint. Entries
recorded as failing must still fail with the same error. The counts in
metadata.json must match the manifest.

Exits non-zero if any problem is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				corpusPath = args[0]
			}
			if corpusPath == "" {
				return errors.New("a corpus path is required")
			}
			return runVerify(cmd.OutOrStdout(), corpusPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&corpusPath, "path", "p", "", "Path to the corpus directory or bundle")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runVerify(w io.Writer, corpusPath string, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Verifying crosshash corpus at %s\n", corpusPath)
	}

	src, err := corpus.Open(corpusPath)
	if err != nil {
		return err
	}
	defer src.Close()

	if verbose {
		md := src.Metadata()
		fmt.Fprintf(w, "Written by crosshash %s with seed %d\n", md.ToolVersion, md.Seed)
		if b, ok := src.(*corpus.Bundle); ok {
			fmt.Fprintf(w, "Bundle holds %d files for %d vector files\n", b.CountFiles(), src.Manifest().GetTargetFileCount())
		}
	}

	report := corpus.Verify(src)
	for _, p := range report.Problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}

	fmt.Fprintf(w, "\nVerification complete:\n")
	fmt.Fprintf(w, "  Vectors checked: %d\n", report.Checked)
	fmt.Fprintf(w, "  Expected failures checked: %d\n", report.Rejected)
	fmt.Fprintf(w, "  Problems: %d\n", len(report.Problems))

	if !report.OK() {
		return fmt.Errorf("%w: %d problems", ErrVerifyFailed, len(report.Problems))
	}
	return nil
}
