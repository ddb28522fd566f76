package entity

import "strings"

// win1252Remap maps the C1 control range 0x80-0x9F to the Windows-1252 code
// points browsers substitute there, per spec §4.C and §9 (decision recorded
// in DESIGN.md / SPEC_FULL.md §9: this is the standard published mapping
// used by every HTML5-conformant parser, not inferred behavior).
var win1252Remap = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

// NumericResult is the outcome of resolving a numeric character reference.
type NumericResult struct {
	// Text is the resolved replacement, 1-2 UTF-16-equivalent runes (a
	// surrogate pair collapses to a single rune in Go's rune representation,
	// since Go runes are full code points, not UTF-16 code units).
	Text string

	// Replaced is true if the raw value fell in the Windows-1252 remap
	// range and was substituted.
	Replaced bool

	// Rejected is true if the code point is a surrogate or otherwise
	// invalid and was replaced with U+FFFD.
	Rejected bool
}

// ResolveDecimal resolves the digits of a "#dddd" numeric reference (without
// the leading "#" or the optional trailing ';').
func ResolveDecimal(digits string) NumericResult {
	return resolveCodePoint(parseUint(digits, 10))
}

// ResolveHex resolves the digits of a "#xhhhh"/"#Xhhhh" numeric reference
// (without the leading "#x"/"#X" or the optional trailing ';').
func ResolveHex(digits string) NumericResult {
	return resolveCodePoint(parseUint(digits, 16))
}

func parseUint(s string, base int) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var v uint64
	for _, c := range s {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, false
		}
		v = v*uint64(base) + d
		if v > 0x7FFFFFFF {
			v = 0x7FFFFFFF // clamp; resolveCodePoint rejects anything out of range anyway
		}
	}
	return uint32(v), true
}

func resolveCodePoint(v uint32, ok bool) NumericResult {
	if !ok {
		return NumericResult{Text: "�", Rejected: true}
	}

	if replaced, isRemapped := win1252Remap[rune(v)]; isRemapped {
		return NumericResult{Text: string(replaced), Replaced: true}
	}

	switch {
	case v == 0:
		return NumericResult{Text: "�", Rejected: true}
	case v >= 0xD800 && v <= 0xDFFF: // surrogate halves are never valid code points
		return NumericResult{Text: "�", Rejected: true}
	case v > 0x10FFFF:
		return NumericResult{Text: "�", Rejected: true}
	case v >= 0x80 && v <= 0x9F:
		// In the remap range but not one of the assigned substitutions
		// (0x81, 0x8D, 0x8F, 0x90, 0x9D are unassigned in Windows-1252):
		// pass the C1 control through unchanged, matching browser behavior.
		return NumericResult{Text: string(rune(v))}
	default:
		return NumericResult{Text: string(rune(v))}
	}
}

// IsHexDigit reports whether c is a valid digit for a "#x" reference.
func IsHexDigit(c rune) bool {
	return strings.ContainsRune("0123456789abcdefABCDEF", c)
}

// IsDecimalDigit reports whether c is a valid digit for a decimal "#"
// reference.
func IsDecimalDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
