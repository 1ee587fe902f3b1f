package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/crosshash/crosshash"
	"github.com/dendrascience/crosshash/version"
	"github.com/spf13/cobra"
)

// ProjectURL is printed in the usage text so test suites can tell this
// binary apart from other tools of the same name.
const ProjectURL = "https://github.com/dendrascience/crosshash"

var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoMode       = errors.New("one of --json or --hash is required")
	ErrBothModes    = errors.New("--json and --hash cannot be used together")
	ErrVerifyFailed = errors.New("corpus verification failed")
	ErrUnknownCase  = errors.New("no such case")
)

// NewRootCmd creates and returns the root cobra command for the crosshash CLI.
// It sets up all subcommands, command groups, and the --json and --hash modes.
func NewRootCmd() *cobra.Command {
	var (
		jsonInput string
		hashInput string
	)

	rootCmd := &cobra.Command{
		Use:   "crosshash",
		Short: "crosshash - Stable JSON serialization and hashing across languages",
		Long: `crosshash produces a canonical JSON text and an MD5 fingerprint that are
identical across implementations in different languages.

  crosshash --json '{"foo": "bar"}'    print the canonical JSON text
  crosshash --hash '{"foo": "bar"}'    print the MD5 fingerprint

Pass - instead of the JSON text to read it from standard input.

Numbers outside [-(2^53-1), 2^53-1] are rejected with ERROR_UNSAFE_NUMBER,
malformed input with ERROR_INVALID_JSON.

Use subcommands to build and check conformance corpora:
  - seed: Generate a corpus of test vectors
  - verify: Verify a corpus directory or bundle
  - cases: Print the fixed test cases

` + ProjectURL,
		Version: version.GetFullVersion(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, fmt.Errorf("unexpected argument %q", args[0]))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonSet, hashSet := cmd.Flags().Changed("json"), cmd.Flags().Changed("hash")
			switch {
			case jsonSet && hashSet:
				return usageError(cmd, ErrBothModes)
			case jsonSet:
				return runCanonical(cmd.InOrStdin(), cmd.OutOrStdout(), jsonInput, crosshash.CanonicalJSON)
			case hashSet:
				return runCanonical(cmd.InOrStdin(), cmd.OutOrStdout(), hashInput, crosshash.HashJSON)
			default:
				return usageError(cmd, ErrNoMode)
			}
		},
	}

	rootCmd.Flags().StringVar(&jsonInput, "json", "", "Print the canonical JSON text of the given JSON")
	rootCmd.Flags().StringVar(&hashInput, "hash", "", "Print the MD5 fingerprint of the given JSON")
	rootCmd.SetFlagErrorFunc(usageError)

	groupCorpus := "corpus"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCorpus,
		Title: "Conformance Corpus",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	seedCmd := NewSeedCmd()
	verifyCmd := NewVerifyCmd()
	casesCmd := NewCasesCmd()
	versionCmd := NewVersionCmd()

	seedCmd.GroupID = groupCorpus
	verifyCmd.GroupID = groupCorpus
	casesCmd.GroupID = groupCorpus
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// usageError prints the help of cmd and marks err as a usage error.
// Subcommands inherit it as their flag error handler.
func usageError(cmd *cobra.Command, err error) error {
	cmd.Help()
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// runCanonical reads the JSON text (or stdin for "-"), applies fn and
// prints the result on its own line.
func runCanonical(stdin io.Reader, w io.Writer, input string, fn func([]byte) (string, error)) error {
	data := []byte(input)
	if input == "-" {
		var err error
		data, err = io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
	}
	out, err := fn(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// HandleError prints crosshash errors as a bare line so external test
// suites can match the ERROR_ tokens. Everything else goes through fang.
func HandleError(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, crosshash.ErrUnsafeNumber) || errors.Is(err, crosshash.ErrDecode) {
		fmt.Fprintln(w, err)
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the root command with fang and returns the exit code.
func Execute() int {
	err := fang.Execute(
		context.Background(),
		NewRootCmd(),
		fang.WithVersion(version.GetFullVersion()),
		fang.WithErrorHandler(HandleError),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		return 1
	}
	return 0
}
