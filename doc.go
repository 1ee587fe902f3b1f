// Package main provides the crosshash command-line interface.
//
// crosshash produces a stable JSON serialization and an MD5 fingerprint of
// it that agree byte for byte with the Python and JavaScript crosshash
// implementations:
//
//	crosshash --json '{"foo": "bar"}'
//	crosshash --hash '{"foo": "bar"}'
//
// The binary also supports subcommands for conformance testing:
//   - seed: Generate a corpus of random and fixed test vectors
//   - verify: Verify a corpus directory or zip bundle
//   - cases: Print the fixed test cases as JSON
//   - version: Print build information
package main
