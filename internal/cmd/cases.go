package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dendrascience/crosshash/corpus"
	"github.com/spf13/cobra"
)

// NewCasesCmd creates and returns the cases subcommand for the crosshash CLI.
func NewCasesCmd() *cobra.Command {
	var (
		fromPath   string
		unsafeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "cases [NAME...]",
		Short: "Print test cases as JSON",
		Long: `Print crosshash test cases as a JSON array.

Each case has a name and an input JSON text, plus either the expected
canonical text and fingerprint or the exact error line an implementation
must report. Other-language implementations can run their test suites
against this list.

By default the fixed cases are printed. With --from, the cases recorded in
a corpus directory or bundle are printed instead. NAME arguments select
cases by name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cases []corpus.Case
				err   error
			)
			if fromPath != "" {
				cases, err = corpusCases(fromPath, args)
			} else {
				cases, err = fixedCases(args)
			}
			if err != nil {
				return err
			}
			if unsafeOnly {
				failing := cases[:0]
				for _, c := range cases {
					if c.Failing() {
						failing = append(failing, c)
					}
				}
				cases = failing
			}
			return writeCases(cmd.OutOrStdout(), cases)
		},
	}

	cmd.Flags().StringVar(&fromPath, "from", "", "Read cases from a corpus directory or bundle")
	cmd.Flags().BoolVar(&unsafeOnly, "unsafe", false, "Only print the cases that must be rejected")

	return cmd
}

func fixedCases(names []string) ([]corpus.Case, error) {
	all := corpus.AllCases()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]corpus.Case, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}
	cases := make([]corpus.Case, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCase, name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func corpusCases(path string, names []string) ([]corpus.Case, error) {
	src, err := corpus.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	selected := src.Manifest()
	if len(names) > 0 {
		m := selected
		selected = corpus.Manifest{}
		for _, name := range names {
			e, ok := m.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCase, name)
			}
			selected.Add(e)
		}
	}

	// The manifest does not record canonical text; it is the vector body.
	cases := selected.Cases()
	i := 0
	for e := range selected.Iterate {
		if e.Target != "" {
			body, err := src.ReadVector(e.Target)
			if err != nil {
				return nil, err
			}
			cases[i].Canonical = string(body)
		}
		i++
	}
	return cases, nil
}

func writeCases(w io.Writer, cases []corpus.Case) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(cases)
}
