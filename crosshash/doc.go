// Package crosshash implements stable JSON canonicalization and hashing.
//
// Two runtimes that decode the same JSON document rarely agree on how to
// print it back: keys come out in insertion order, 1.0 and 1 are different
// tokens on one side and the same number on the other, and non-ASCII text
// may or may not be escaped. This package collapses all of those choices
// into one canonical text and derives a fingerprint from it, so that
// independent implementations can compare structured values by comparing
// short strings.
//
// Canonical text:
//   - Object members sorted by byte-wise comparison of their UTF-8 keys
//   - Array elements kept in order
//   - Integral numbers printed as integers (1.0 becomes 1)
//   - Fractional numbers printed in the shortest round-trip form used by
//     ECMAScript (1.1, 0.000001, 1e-7)
//   - Strings with minimal escaping; all other Unicode emitted literally
//   - No insignificant whitespace and no trailing newline
//
// Every number must lie within [-MaxSafeInteger, MaxSafeInteger], the range
// a 64-bit double represents exactly. Anything outside it fails with an
// error whose text starts with ERROR_UNSAFE_NUMBER.
//
// The fingerprint is the lowercase hex MD5 digest of the canonical text.
// It is meant for equality checks, not as a security primitive.
//
// Values are modelled by the sealed Value interface (Null, Bool, Number,
// String, Array, Object). Decode builds one from JSON text and ValueOf
// converts trees produced by encoding/json.
package crosshash
