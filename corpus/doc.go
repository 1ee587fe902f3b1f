// Package corpus builds and checks conformance vectors for crosshash
// implementations.
//
// A corpus is a directory of content-addressed vector files, one per
// distinct canonical text, plus a manifest and a metadata file:
//
//	manifest.json
//	metadata.json
//	<bucket>/<subbucket>/<bucket>-<subbucket>-<fingerprint>.json
//
// The bucket is derived from a color hash of the fingerprint mod 1000.
// Each vector file holds exactly the canonical text, so its MD5 is its
// fingerprint.
//
// Vectors come from two places: the fixed cases shared with the Python and
// JavaScript implementations (Cases, UnsafeCases) and a seeded Generator
// that produces random object trees. A corpus can be zipped into a bundle
// with WriteBundle and checked from either form with Verify.
package corpus
