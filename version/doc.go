// Package version provides version information and build metadata for crosshash.
//
// Version information comes from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// The package provides multiple version formats:
//   - GetVersion(): Simple version string
//   - GetFullVersion(): Formatted version with commit and build date
//   - GetInfo(): Complete version information as a struct
//   - PrintVersion(): Human-readable version output
//
// The version string is also recorded in every corpus metadata file, so a
// corpus can be traced back to the build that wrote it:
//
//	go build -ldflags "-X github.com/dendrascience/crosshash/version.Version=v1.0.0 -X github.com/dendrascience/crosshash/version.Commit=abc123"
package version
