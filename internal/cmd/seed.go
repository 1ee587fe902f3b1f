package cmd

import (
	"fmt"
	"io"

	"github.com/dendrascience/crosshash/corpus"
	"github.com/spf13/cobra"
)

type seedOptions struct {
	outputPath string
	configPath string
	bundlePath string
	count      int
	subbuckets int
	seed       uint64
	verbose    bool

	countSet bool
	seedSet  bool
}

// NewSeedCmd creates and returns the seed subcommand for the crosshash CLI.
// It generates a corpus of random test vectors plus the fixed cases.
func NewSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a corpus of test vectors",
		Long: `Generate a conformance corpus for crosshash implementations.

Random JSON objects are built from a seeded generator and written with
shuffled keys, indentation and ".0" fractions so that every input differs
from its canonical form. The fixed cases, including inputs that must be
rejected, are always added.

Each distinct canonical text is stored once, in a content-addressed file
named <bucket>-<subbucket>-<fingerprint>.json. A manifest.json lists every
case with its input and expected fingerprint or error, and metadata.json
records the counts and the seed. Re-running with the same --seed and config
reproduces the same inputs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.countSet = cmd.Flags().Changed("count")
			opts.seedSet = cmd.Flags().Changed("seed")
			return runSeed(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "f", "", "YAML generator config file")
	cmd.Flags().StringVarP(&opts.bundlePath, "bundle", "b", "", "Also write the corpus to this .zip bundle")
	cmd.Flags().IntVarP(&opts.count, "count", "c", 100, "Number of random vectors to generate")
	cmd.Flags().IntVar(&opts.subbuckets, "subbuckets", 0, "Spread each bucket over this many subdirectories")
	cmd.Flags().Uint64VarP(&opts.seed, "seed", "s", 0, "Generator seed (0 picks a time based seed)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(w io.Writer, opts seedOptions) error {
	cfg := corpus.DefaultGeneratorConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = corpus.LoadGeneratorConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.countSet {
		cfg.NumCases = opts.count
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}

	gen, err := corpus.NewGenerator(cfg)
	if err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprintf(w, "Generating %d random vectors in %s\n", cfg.NumCases, opts.outputPath)
		fmt.Fprintf(w, "Config: %s\n", cfg)
		fmt.Fprintf(w, "Seed: %d\n", gen.Seed())
	}

	random, err := gen.Cases()
	if err != nil {
		return fmt.Errorf("failed to generate vectors: %w", err)
	}
	cases := append(corpus.AllCases(), random...)

	store, err := corpus.NewStore(opts.outputPath)
	if err != nil {
		return err
	}
	store.Subbuckets = opts.subbuckets
	m, md, err := store.Write(cases, gen.Seed())
	if err != nil {
		return err
	}

	if opts.verbose {
		fmt.Fprintf(w, "Wrote %d vector files (%d bytes of canonical text)\n", md.TargetFileCount, md.CanonicalSize)
		fmt.Fprintf(w, "Manifest entries: %d (%d expected failures)\n", m.Len(), md.ErrorCount)
	}

	if opts.bundlePath != "" {
		if err := corpus.WriteBundle(opts.outputPath, opts.bundlePath); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		if opts.verbose {
			fmt.Fprintf(w, "Bundle written to %s\n", opts.bundlePath)
		}
	}

	fmt.Fprintf(w, "Seeded %d cases into %s (seed %d)\n", m.Len(), opts.outputPath, gen.Seed())
	return nil
}
