package scan

import (
	"strings"
	"unicode"

	"github.com/htmlscan/htmlscan/scan/entity"
)

// resolveCharRef assumes the current unread character is '&' and attempts
// to resolve a character reference starting there (spec §4.C). It never
// consumes anything unless a reference actually matches: every character it
// examines is read via peekRune, and only the matched span is committed
// with readRune, so a bare stray '&' is left untouched for the caller to
// treat as ordinary text.
//
// inAttrValue applies the HTML5 legacy-entity leniency quirk (spec §4.D.2):
// inside an attribute value, a legacy name that does not end in ';' is only
// honored if the character immediately following it is not alphanumeric or
// '=' -- otherwise "&notin=foo" inside an attribute must not eat "not" as
// an entity.
func (s *Scanner) resolveCharRef(inAttrValue bool) (replacement string, consumed int, ok bool) {
	if r, has := s.peekRune(1); has && r == '#' {
		return s.resolveNumericRef()
	}
	return s.resolveNamedRef(inAttrValue)
}

func (s *Scanner) resolveNamedRef(inAttrValue bool) (string, int, bool) {
	resolver := entityTrie.NewResolver()

	i := 1
	for {
		r, has := s.peekRune(i)
		if !has {
			break
		}
		accepted, done := resolver.Feed(r)
		if !accepted {
			break
		}
		i++
		if done {
			break
		}
	}

	res := resolver.Result()
	if !res.Matched {
		return "", 0, false
	}

	if inAttrValue && !res.EndsWithSemicolon {
		if next, has := s.peekRune(1 + res.Consumed); has && (next == '=' || isAlphaNumeric(next)) {
			return "", 0, false
		}
	}

	total := 1 + res.Consumed
	consumeRunes(s, total)
	return res.Replacement, total, true
}

func (s *Scanner) resolveNumericRef() (string, int, bool) {
	i := 2 // past '&' and '#'
	hex := false
	if r, has := s.peekRune(i); has && (r == 'x' || r == 'X') {
		hex = true
		i++
	}

	start := i
	for {
		r, has := s.peekRune(i)
		if !has {
			break
		}
		if hex {
			if !entity.IsHexDigit(r) {
				break
			}
		} else if !entity.IsDecimalDigit(r) {
			break
		}
		i++
	}
	if i == start {
		return "", 0, false
	}

	var digits strings.Builder
	for k := start; k < i; k++ {
		r, _ := s.peekRune(k)
		digits.WriteRune(r)
	}

	total := i
	if r, has := s.peekRune(i); has && r == ';' {
		total = i + 1
	}

	var res entity.NumericResult
	if hex {
		res = entity.ResolveHex(digits.String())
	} else {
		res = entity.ResolveDecimal(digits.String())
	}

	consumeRunes(s, total)
	if res.Rejected {
		return "�", total, true
	}
	return res.Text, total, true
}

func consumeRunes(s *Scanner, n int) {
	for k := 0; k < n; k++ {
		s.readRune()
	}
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
