package scan

import (
	"errors"
	"fmt"
)

// SyntaxError describes a recovered malformation (spec §4.D.8, §7
// "Recovered malformation"). Scanning never stops because of one, and the
// Scanner does not return SyntaxError values: it recovers silently, the
// same distinction the teacher draws between *esixml.SyntaxError
// (parse-time) and an I/O error from the underlying reader.
type SyntaxError struct {
	// At is the character offset where the malformation was noticed.
	At int

	// Message describes what looked wrong.
	Message string
}

// Error returns a human-readable error message.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("malformed markup at offset %d: %s", s.At, s.Message)
}

// Is checks if the given error matches the receiver.
func (s *SyntaxError) Is(err error) bool {
	var o *SyntaxError
	return errors.As(err, &o) && o.At == s.At && o.Message == s.Message
}

// ReplayUnavailableError is returned when a <meta charset> change requires
// re-decoding from the start of the document but the byte source can no
// longer replay (spec §4.D.8, §7 "Unrecoverable structure"). This is fatal:
// the caller must abort the parse.
type ReplayUnavailableError struct {
	// Declared is the encoding the document declared.
	Declared string
}

// Error returns a human-readable error message.
func (r *ReplayUnavailableError) Error() string {
	return fmt.Sprintf("cannot replay input to switch to declared encoding %q", r.Declared)
}

// Is checks if the given error matches the receiver.
func (r *ReplayUnavailableError) Is(err error) bool {
	var o *ReplayUnavailableError
	return errors.As(err, &o) && o.Declared == r.Declared
}

// IOError wraps a fatal read failure from the underlying byte source (spec
// §7 "Fatal I/O").
type IOError struct {
	Underlying error
}

// Error returns a human-readable error message.
func (i *IOError) Error() string {
	return fmt.Sprintf("i/o error reading input: %s", i.Underlying)
}

// Unwrap returns i.Underlying.
func (i *IOError) Unwrap() error {
	return i.Underlying
}
