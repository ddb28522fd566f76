// Package source implements the byte-level input side of the scanner: a
// playback-capable byte stream (spec §4.A) and the pluggable character
// decoders it feeds (spec §4.B).
package source

import (
	"errors"
	"io"
)

// ErrAlreadyDetected is returned by DetectEncoding when called more than
// once on the same Stream (spec §4.A: "Idempotence: calling detect twice
// fails with AlreadyDetected").
var ErrAlreadyDetected = errors.New("source: encoding already detected")

// Mode is the playback state of a Stream, per spec §3 "Playback byte
// stream": recording -> (playing back | cleared); playback -> cleared
// (automatic, at replay end); cleared is terminal.
type Mode int

const (
	Recording Mode = iota
	Playback
	Cleared
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Recording:
		return "Recording"
	case Playback:
		return "Playback"
	case Cleared:
		return "Cleared"
	default:
		return "Mode(?)"
	}
}

// Stream wraps a raw byte source with the recording/playback/cleared state
// machine needed to re-decode a document after an incompatible mid-stream
// encoding change (spec §4.D.4).
type Stream struct {
	r io.Reader

	mode Mode

	// pending holds bytes that were read from r (and, if recording,
	// already appended to record) but not yet handed back to the caller --
	// used to push back bytes peeked by DetectEncoding that turned out not
	// to be a BOM.
	pending    []byte
	pendingPos int

	record  []byte
	playPos int

	detected bool
}

// New returns a new Stream reading from r, starting in Recording mode.
func New(r io.Reader) *Stream {
	return &Stream{r: r, mode: Recording}
}

// Mode returns the current playback mode.
func (s *Stream) Mode() Mode {
	return s.mode
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	if s.pendingPos < len(s.pending) {
		n := copy(p, s.pending[s.pendingPos:])
		s.pendingPos += n
		if s.mode == Recording {
			s.record = append(s.record, p[:n]...)
		}
		if s.pendingPos >= len(s.pending) {
			s.pending, s.pendingPos = nil, 0
		}
		return n, nil
	}

	switch s.mode {
	case Playback:
		if s.playPos < len(s.record) {
			n := copy(p, s.record[s.playPos:])
			s.playPos += n
			if s.playPos >= len(s.record) {
				s.mode = Cleared
				s.record = nil
			}
			return n, nil
		}
		s.mode = Cleared
		s.record = nil
		return s.r.Read(p)
	default: // Recording or Cleared
		n, err := s.r.Read(p)
		if n > 0 && s.mode == Recording {
			s.record = append(s.record, p[:n]...)
		}
		return n, err
	}
}

// DetectEncoding peeks the first 2-3 bytes of the stream for a UTF-8,
// UTF-16LE, or UTF-16BE byte-order mark (spec §6.2). On a match it writes
// the canonical encoding name to out[0] and a decoder-recognized alias to
// out[1], and consumes the BOM. On no match it pushes every peeked byte
// back so the next Read returns them unchanged.
func (s *Stream) DetectEncoding(out *[2]string) error {
	if s.detected {
		return ErrAlreadyDetected
	}
	s.detected = true

	buf := make([]byte, 3)
	n, _ := io.ReadFull(s.r, buf)

	switch {
	case n >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF:
		out[0], out[1] = "UTF-8", "utf-8"
		s.recordConsumed(buf[:3])
		return nil
	case n >= 2 && buf[0] == 0xFF && buf[1] == 0xFE:
		out[0], out[1] = "UTF-16LE", "utf-16le"
		s.recordConsumed(buf[:2])
		s.pushBack(buf[2:n])
		return nil
	case n >= 2 && buf[0] == 0xFE && buf[1] == 0xFF:
		out[0], out[1] = "UTF-16BE", "utf-16be"
		s.recordConsumed(buf[:2])
		s.pushBack(buf[2:n])
		return nil
	default:
		s.pushBack(buf[:n])
		return nil
	}
}

func (s *Stream) recordConsumed(b []byte) {
	if s.mode == Recording {
		s.record = append(s.record, b...)
	}
}

func (s *Stream) pushBack(b []byte) {
	if len(b) == 0 {
		return
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	s.pending = cp
	s.pendingPos = 0
}

// StartPlayback causes subsequent reads to return previously recorded bytes
// from position 0; once exhausted the stream automatically transitions to
// Cleared and reads resume passing through to the underlying reader from
// wherever it had reached.
func (s *Stream) StartPlayback() {
	s.mode = Playback
	s.playPos = 0
	s.pending, s.pendingPos = nil, 0
}

// Clear releases the replay buffer and enters Cleared mode. Calling Clear
// while in Playback is a no-op: playback must finish (or the caller must
// read it to exhaustion) first.
func (s *Stream) Clear() {
	if s.mode == Playback {
		return
	}
	s.record = nil
	s.mode = Cleared
}
