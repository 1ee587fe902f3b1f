package corpus

import (
	"errors"

	"github.com/dendrascience/crosshash/crosshash"
)

// Case is a single conformance vector. Input is the JSON text handed to an
// implementation; Canonical and Fingerprint are the expected outputs. For
// cases that must be rejected, Error holds the expected message instead.
type Case struct {
	Name        string `json:"name"`
	Input       string `json:"input"`
	Canonical   string `json:"canonical,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Failing reports whether c is expected to be rejected.
func (c Case) Failing() bool {
	return c.Error != ""
}

// NewCase runs input through the canonicalizer and records the outcome.
// An unsafe number is recorded in Error; input that is not JSON at all is
// returned as an error.
func NewCase(name, input string) (Case, error) {
	c := Case{Name: name, Input: input}
	text, err := crosshash.CanonicalJSON([]byte(input))
	switch {
	case errors.Is(err, crosshash.ErrUnsafeNumber):
		c.Error = err.Error()
		return c, nil
	case err != nil:
		return Case{}, err
	}
	c.Canonical = text
	c.Fingerprint = crosshash.HashString(text)
	return c, nil
}

// Cases returns the fixed cases every implementation must hash identically.
func Cases() []Case {
	return []Case{
		{Name: "zero", Input: `0`, Canonical: `0`, Fingerprint: "cfcd208495d565ef66e7dff9f98764da"},
		{Name: "zero-point-one", Input: `0.1`, Canonical: `0.1`, Fingerprint: "cb5ae17636e975f9bf71ddf5bc542075"},
		{Name: "one", Input: `1`, Canonical: `1`, Fingerprint: "c4ca4238a0b923820dcc509a6f75849b"},
		{Name: "one-float", Input: `1.0`, Canonical: `1`, Fingerprint: "c4ca4238a0b923820dcc509a6f75849b"},
		{Name: "one-point-one", Input: `1.1`, Canonical: `1.1`, Fingerprint: "777d45bbbcdf50d49c42c70ad7acf5fe"},
		{Name: "empty-string", Input: `""`, Canonical: `""`, Fingerprint: "9d4568c009d203ab10e33ea9953a0264"},
		{Name: "null-character", Input: `"\u0000"`, Canonical: `"\u0000"`, Fingerprint: "95e00bc6bebd095edcb37d6bab0be0b8"},
		{Name: "ascii", Input: `"AAA"`, Canonical: `"AAA"`, Fingerprint: "e3853c796610cb11d948df4702723d54"},
		{
			Name:        "arabic",
			Input:       `"\u0628\u0627\u064a\u062b\u0648\u0646"`,
			Canonical:   "\"\u0628\u0627\u064a\u062b\u0648\u0646\"",
			Fingerprint: "73362139e8be435b75976ffd818c0de5",
		},
		{
			Name:        "katakana",
			Input:       `"\u30b8\u30e3\u30d0\u30b9\u30af\u30ea\u30d7\u30c8"`,
			Canonical:   "\"\u30b8\u30e3\u30d0\u30b9\u30af\u30ea\u30d7\u30c8\"",
			Fingerprint: "32f53c19c0d98bbaad8f70bb158f75b0",
		},
		{
			Name:        "emoji",
			Input:       `"\ud83d\ude80\ud83d\udc68\u200d\u2696\ufe0f\ud83d\udc69\ud83c\udffc\u200d\ud83d\udd2c"`,
			Canonical:   "\"\U0001f680\U0001f468\u200d\u2696\ufe0f\U0001f469\U0001f3fc\u200d\U0001f52c\"",
			Fingerprint: "5c63de3b2c621edfb7e1aaff969a2300",
		},
		{Name: "true", Input: `true`, Canonical: `true`, Fingerprint: "b326b5062b2f0e69046810717534cb09"},
		{Name: "false", Input: `false`, Canonical: `false`, Fingerprint: "68934a3e9455fa72420237eb05902327"},
		{Name: "null", Input: `null`, Canonical: `null`, Fingerprint: "37a6259cc0c1dae299a7866489dff0bd"},
		{
			Name:        "mixed-array",
			Input:       `[1, 2, 3, "AAA", "BBB", "CCC"]`,
			Canonical:   `[1,2,3,"AAA","BBB","CCC"]`,
			Fingerprint: "c163a400a2f347c66488df74b0ef9060",
		},
		{Name: "empty-array", Input: `[]`, Canonical: `[]`, Fingerprint: "d751713988987e9331980363e24189ce"},
		{Name: "empty-object", Input: `{}`, Canonical: `{}`, Fingerprint: "99914b932bd37a50b983c5e7c90ae93b"},
		{Name: "empty-member", Input: `{"empty": ""}`, Canonical: `{"empty":""}`, Fingerprint: "63eafb306265e541eb39cc94c292ccc0"},
		{
			Name:        "float-with-fraction",
			Input:       `{"float_with_fraction": 1.1}`,
			Canonical:   `{"float_with_fraction":1.1}`,
			Fingerprint: "c742298cd4c08428100f5ede844df9ed",
		},
		{
			Name:        "float-with-no-fraction",
			Input:       `{"float_with_no_fraction": 1.0}`,
			Canonical:   `{"float_with_no_fraction":1}`,
			Fingerprint: "a820e9156da606fd58390accf953668d",
		},
		{
			Name:        "emojis-member",
			Input:       `{"emojis": "\ud83d\ude80\ud83d\udc68\u200d\u2696\ufe0f\ud83d\udc69\ud83c\udffc\u200d\ud83d\udd2c"}`,
			Canonical:   "{\"emojis\":\"\U0001f680\U0001f468\u200d\u2696\ufe0f\U0001f469\U0001f3fc\u200d\U0001f52c\"}",
			Fingerprint: "a56dbe834ce13db3e5a60d84ef7d7168",
		},
		{
			Name:        "non-latin-member",
			Input:       `{"non_latin": "\u010d\u0107\u017e\u0161\u0111"}`,
			Canonical:   "{\"non_latin\":\"\u010d\u0107\u017e\u0161\u0111\"}",
			Fingerprint: "901da3dbb4dec75fbbfd5c9cdfbabb5f",
		},
		{
			Name:        "null-character-member",
			Input:       `{"null_character": "\u0000"}`,
			Canonical:   `{"null_character":"\u0000"}`,
			Fingerprint: "9e82b6b9fb8219514805c935af4d072c",
		},
	}
}

// UnsafeCases returns the fixed cases every implementation must reject.
func UnsafeCases() []Case {
	return []Case{
		{
			Name:  "unsafe-int",
			Input: `{"unsafe_int": 9007199254740992}`,
			Error: "ERROR_UNSAFE_NUMBER: 9007199254740992",
		},
		{
			Name:  "unsafe-float",
			Input: `{"unsafe_float": 9007199254740992.1}`,
			Error: "ERROR_UNSAFE_NUMBER: 9007199254740992",
		},
	}
}

// AllCases returns Cases followed by UnsafeCases.
func AllCases() []Case {
	return append(Cases(), UnsafeCases()...)
}
