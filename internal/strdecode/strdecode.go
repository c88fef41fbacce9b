// Package strdecode turns the two name/value encodings the hive format uses
// into Go strings: UTF-16LE for the common case, and an 8-bit codepage
// (Windows-1252 in practice) for keys and values whose compressed-name flag
// is set. Decoding never panics; malformed input degrades to a best-effort
// string rather than an aborted parse, per the byte-reader contract in
// spec.md §4.1.
package strdecode

import (
	"golang.org/x/text/encoding/charmap"
)

// ASCII decodes b as Windows-1252 (what the format docs call "ASCII" for
// compressed names). Bytes below 0x80 are plain ASCII; charmap.Windows1252
// only has to do work for the extended range.
func ASCII(b []byte) string {
	if isASCII(b) {
		return string(b)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		// Best-effort: fall back to a lossy byte-for-byte cast rather than
		// aborting the caller's traversal over one bad name.
		return string(b)
	}
	return string(decoded)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return false
		}
	}
	return true
}

// Surrogate range bounds (UTF-16's reserved D800-DFFF block).
const (
	surrHighStart = 0xD800
	surrHighEnd   = 0xDBFF
	surrLowStart  = 0xDC00
	surrLowEnd    = 0xDFFF
)

// UTF16LE decodes b as UTF-16LE, tolerating an odd trailing byte and
// malformed surrogate pairs by skipping rather than aborting: a lone high
// or low surrogate unit is dropped from the output entirely rather than
// replaced, matching spec.md §4.1's "trap = ignore" wording. This is
// hand-rolled rather than built on unicode/utf16.Decode because that
// stdlib decoder substitutes U+FFFD for an invalid unit instead of
// skipping it, which is a different (and disallowed) trap behavior. If
// stripTrail is true and the decoded string ends in a single NUL, that NUL
// is removed (the one terminating null pair REG_SZ-family values carry).
func UTF16LE(b []byte, stripTrail bool) string {
	runes := make([]rune, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := uint16(b[i]) | uint16(b[i+1])<<8
		switch {
		case u >= surrHighStart && u <= surrHighEnd:
			if i+3 < len(b) {
				u2 := uint16(b[i+2]) | uint16(b[i+3])<<8
				if u2 >= surrLowStart && u2 <= surrLowEnd {
					r := (rune(u-surrHighStart)<<10 | rune(u2-surrLowStart)) + 0x10000
					runes = append(runes, r)
					i += 2
					continue
				}
			}
			// Lone high surrogate with no valid following low half: skip it.
		case u >= surrLowStart && u <= surrLowEnd:
			// Lone low surrogate with no preceding high half: skip it.
		default:
			runes = append(runes, rune(u))
		}
	}
	s := string(runes)
	if stripTrail && len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}

// SplitMultiSZ decodes a raw REG_MULTI_SZ payload as UTF-16LE (NUL-joined
// strings, optionally with a trailing empty string) and splits it into its
// components.
func SplitMultiSZ(b []byte) []string {
	return splitNULJoined(UTF16LE(b, false))
}

// SplitMultiSZASCII is SplitMultiSZ for the VK_VALUE_COMP_NAME case, where
// the payload is 8-bit codepage bytes rather than UTF-16LE.
func SplitMultiSZASCII(b []byte) []string {
	return splitNULJoined(ASCII(b))
}

func splitNULJoined(raw string) []string {
	var out []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == 0 {
			if i > start {
				out = append(out, raw[start:i])
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		out = append(out, raw[start:])
	}
	return out
}
