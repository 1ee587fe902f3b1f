// Package cmd provides the command-line interface implementation for crosshash.
//
// The root command canonicalizes or fingerprints a single JSON text given
// with --json or --hash. Errors carrying the ERROR_UNSAFE_NUMBER or
// ERROR_INVALID_JSON tokens are printed as a bare line by HandleError so
// that external test suites can match them; the process exits with status 1.
//
// The package is organized into the following commands:
//   - root: --json and --hash modes, command coordinator and entry point
//   - seed: conformance corpus generation
//   - verify: corpus and bundle verification
//   - cases: the fixed test cases as JSON
//   - version: build information
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Execute wraps the root command with Fang for
// styled help and errors.
package cmd
