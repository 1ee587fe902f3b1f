package corpus

import "errors"

// Sentinel errors for package corpus.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Hash path errors
	ErrInvalidHashPath = errors.New("invalid hash path format")

	// Bundle errors
	ErrNotBundleExtension = errors.New("file path extension is not '.zip'")
	ErrMissingManifest    = errors.New("manifest not found")

	// Config errors
	ErrInvalidConfig = errors.New("invalid generator config")

	// Verification problems
	ErrMissingVector       = errors.New("vector file missing")
	ErrTargetMismatch      = errors.New("target does not match fingerprint")
	ErrSizeMismatch        = errors.New("size does not match vector file")
	ErrTextMismatch        = errors.New("canonical text mismatch")
	ErrFingerprintMismatch = errors.New("fingerprint mismatch")
	ErrExpectedFailure     = errors.New("expected canonicalization to fail")
	ErrMetadataMismatch    = errors.New("metadata does not match manifest")
)
