package scan

import (
	"strings"

	"github.com/htmlscan/htmlscan/scan/source"
)

// ObserveMetaCharset inspects a just-emitted TokenStartTag for "meta" and,
// if it declares a charset incompatible with the encoding currently in use,
// attempts the mid-stream restart described in spec §6.2/scenario S6:
// rewind the byte source to the start via Stream.StartPlayback, build a
// fresh Decoder for the declared encoding, and reset position counters.
//
// Callers (htmlscan.Parser.Parse, or a caller driving Next directly) invoke this
// once per StartTag token named "meta"; it is a no-op for any other token.
// It returns a *ReplayUnavailableError if the source can no longer be
// replayed (the stream already moved past Recording into Cleared mode).
func (s *Scanner) ObserveMetaCharset(t Token) error {
	if t.Type != TokenStartTag || !strings.EqualFold(t.Name.Local, "meta") {
		return nil
	}
	if s.metaEncodingSwitched {
		return nil // already restarted once; do not loop forever on repeats
	}

	declared := declaredCharset(t.Attrs)
	if declared == "" {
		return nil
	}

	canonical := source.CanonicalName(declared)
	if source.Compatible(canonical, s.decoder.Encoding()) {
		return nil
	}

	if s.stream.Mode() == source.Cleared {
		return &ReplayUnavailableError{Declared: canonical}
	}

	s.stream.StartPlayback()
	dec, err := source.NewDecoder(canonical, s.stream)
	if err != nil {
		return &ReplayUnavailableError{Declared: canonical}
	}

	s.decoder = dec
	s.buf.Reset()
	s.line, s.column, s.offset = 1, 1, 0
	s.eof = false
	s.endEmitted = false
	s.mode = modeContent
	s.metaEncodingSwitched = true
	return nil
}

// declaredCharset extracts the encoding name from either a "charset"
// attribute or an http-equiv="Content-Type" content attribute's
// "charset=" parameter (spec §6.2 meta-charset detection).
func declaredCharset(attrs []Attr) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, "charset") {
			return a.Value
		}
	}
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, "content") {
			if idx := strings.Index(strings.ToLower(a.Value), "charset="); idx >= 0 {
				v := a.Value[idx+len("charset="):]
				v = strings.Trim(v, `"' `)
				if semi := strings.IndexByte(v, ';'); semi >= 0 {
					v = v[:semi]
				}
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}
