package scan

import (
	"io"

	"github.com/htmlscan/htmlscan/scan/source"
)

// PushSource inserts r as the scanner's active character source, ahead of
// whatever was active before (spec §4.D.1 "pushInputSource"): the next
// characters read come from r, in the given encoding, until r is
// exhausted, at which point the previously active source resumes exactly
// where it left off. This is the primitive a consumer uses to splice
// synthesized or externally fetched markup into the middle of a parse
// (e.g. an included fragment), the same shape as document.write in a
// browser but driven explicitly by the caller rather than implicitly by a
// script element.
func (s *Scanner) PushSource(r io.Reader, encoding string) error {
	if encoding == "" {
		encoding = "UTF-8"
	}
	dec, err := source.NewDecoder(source.CanonicalName(encoding), r)
	if err != nil {
		return err
	}
	s.sources = append(s.sources, &charSource{dec: dec})
	return nil
}

// PushDepth reports how many sources are currently stacked above the
// primary decoder, for callers that want to bound recursive pushes.
func (s *Scanner) PushDepth() int {
	return len(s.sources)
}
