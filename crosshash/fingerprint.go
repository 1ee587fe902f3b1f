package crosshash

import (
	"crypto/md5"
	"encoding/hex"
)

// DigestLength is the length of a fingerprint in hex characters.
const DigestLength = 2 * md5.Size

// Fingerprint returns the lowercase hex MD5 digest of the canonical text
// of v. It fails only when Canonicalize does.
func Fingerprint(v Value) (string, error) {
	text, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return HashString(text), nil
}

// HashString returns the fingerprint of text that is already canonical.
func HashString(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashJSON decodes JSON text and returns its fingerprint.
func HashJSON(data []byte) (string, error) {
	v, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Fingerprint(v)
}
