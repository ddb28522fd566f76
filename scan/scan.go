package scan

import (
	"errors"
	"io"

	"github.com/htmlscan/htmlscan/scan/charbuf"
	"github.com/htmlscan/htmlscan/scan/entity"
	"github.com/htmlscan/htmlscan/scan/source"
)

// mode tracks the scanner's persistent lexical mode, which (unlike the
// per-token state transitions in states.go) survives across many Next()
// calls: once a <script>/<style>/<textarea> opens, every subsequent Next()
// call stays in raw-text mode until the matching end tag is found; once
// <plaintext> opens, the scanner never leaves plaintext mode again.
type mode int

const (
	modeContent mode = iota
	modeRawText
	modePlaintext
)

var entityTrie = entity.Build() //nolint:gochecknoglobals // built once, read-only, spec §4.C

// Options configures scanner-level features from spec §6.4 that affect
// tokenization itself (the rest of the feature surface belongs to the
// balancer and lives in package htmlscan).
type Options struct {
	// NotifyCharRefs emits StartGeneralEntity/EndGeneralEntity tokens
	// around each resolved character reference, named or numeric.
	NotifyCharRefs bool

	// CDATASections emits StartCDATA/Characters/EndCDATA instead of
	// folding CDATA content into ordinary Characters.
	CDATASections bool

	// DefaultEncoding is used when no BOM is found and no encoding was
	// declared by the caller.
	DefaultEncoding string
}

// charSource is one entry of the scanner's character-source stack (spec
// §4.D.1 "pushInputSource").
type charSource struct {
	dec source.Decoder
}

// Scanner is the core tokenizer state machine from spec §4.D. It is not
// safe for concurrent use: a parse is driven by a single goroutine calling
// Next (the Go realization of the spec's cooperative "scanDocument"; see
// "Open Questions resolved" in DESIGN.md).
type Scanner struct {
	opts Options

	stream  *source.Stream
	decoder source.Decoder
	buf     *charbuf.Buffer

	sources []*charSource // PushSource stack; the primary decoder is s.decoder, not on this stack

	line   int
	column int
	offset int

	mode        mode
	rawTextName string // lowercase tag name that opened raw-text mode

	sawStartDocument bool
	eof              bool
	endEmitted       bool
	fatal            error

	pending []Token // multi-token productions (char-ref notifications) queued for delivery

	metaEncodingSwitched bool

	skipLF bool // last raw character folded into buffer was a '\r'; drop a following '\n'
}

// New creates a Scanner reading from r. detectedEncoding, if non-empty, is
// an encoding the caller already knows, and BOM sniffing is skipped;
// otherwise the scanner sniffs a byte-order mark (spec §6.2) and, if there
// is none, uses opts.DefaultEncoding, falling back to "UTF-8".
func New(r io.Reader, detectedEncoding string, opts Options) (*Scanner, error) {
	s := &Scanner{opts: opts, buf: charbuf.New(256)}
	s.stream = source.New(r)

	enc := detectedEncoding
	if enc == "" {
		var out [2]string
		if err := s.stream.DetectEncoding(&out); err != nil {
			return nil, err
		}
		enc = out[0]
	}
	if enc == "" {
		enc = opts.DefaultEncoding
	}
	if enc == "" {
		enc = "UTF-8"
	}

	dec, err := source.NewDecoder(source.CanonicalName(enc), s.stream)
	if err != nil {
		return nil, err
	}
	s.decoder = dec
	s.line, s.column = 1, 1
	return s, nil
}

// Encoding returns the canonical encoding name currently in use.
func (s *Scanner) Encoding() string {
	return s.decoder.Encoding()
}

// fill pulls one more decoded, newline-normalized rune into the buffer from
// the active character source (the top of the push stack, if any, else the
// primary decoder), collapsing "\r\n" and bare "\r" to "\n" (spec §4.D.6).
// Returns false at end of input or on a fatal read error (see s.fatal).
func (s *Scanner) fill() bool {
	for {
		r, ok := s.readRaw()
		if !ok {
			return false
		}

		if r == '\n' && s.skipLF {
			s.skipLF = false
			continue
		}
		s.skipLF = r == '\r'
		if r == '\r' {
			r = '\n'
		}

		s.buf.PushRune(r)
		return true
	}
}

// readRaw returns the next undecoded character from whichever source is
// active, popping exhausted pushed sources (spec §4.D.1) until one yields a
// character or the primary decoder itself is exhausted.
func (s *Scanner) readRaw() (rune, bool) {
	if s.eof {
		return 0, false
	}

	for len(s.sources) > 0 {
		top := s.sources[len(s.sources)-1]
		r, _, err := top.dec.ReadRune()
		if err == nil {
			return r, true
		}
		if !errors.Is(err, io.EOF) {
			s.fatal = &IOError{Underlying: err}
			return 0, false
		}
		s.sources = s.sources[:len(s.sources)-1]
	}

	r, _, err := s.decoder.ReadRune()
	if err == nil {
		return r, true
	}
	if errors.Is(err, io.EOF) {
		s.eof = true
		return 0, false
	}
	s.fatal = &IOError{Underlying: err}
	return 0, false
}

// ensure guarantees at least n unread runes are resident, pulling more from
// the source as needed. It returns the number actually available (may be
// less than n at EOF).
func (s *Scanner) ensure(n int) int {
	for s.buf.Len() < n {
		if !s.fill() {
			break
		}
	}
	return s.buf.Len()
}

// readRune consumes and returns the next character (already newline
// normalized by fill) and advances line/column/offset bookkeeping (spec
// §4.D.6).
func (s *Scanner) readRune() (rune, bool) {
	if s.ensure(1) == 0 {
		return 0, false
	}
	r, _ := s.buf.Next()

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.offset++
	return r, true
}

func (s *Scanner) peekRune(n int) (rune, bool) {
	if s.ensure(n+1) <= n {
		return 0, false
	}
	r, _ := s.buf.Peek(n)
	return r, true
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.offset}
}

// rewind pushes n already-read characters back for re-scanning. It is only
// legal for characters still resident in the buffer (spec §3 invariant).
func (s *Scanner) rewind(n int) {
	if n <= 0 {
		return
	}
	_ = s.buf.Rewind(n)
	s.offset -= n
	// Line/column bookkeeping on rewind is approximate (spec leaves exact
	// re-entry position unspecified for error recovery paths); callers
	// only rewind within the current token, which never crosses a line in
	// practice for the constructs that need rewinding (entity lookahead,
	// tag-name mismatches).
	s.column -= n
	if s.column < 1 {
		s.column = 1
	}
}

func (s *Scanner) queue(t Token) {
	s.pending = append(s.pending, t)
}

// Next advances the state machine to the next emission boundary and
// returns one token, or io.EOF once the document is exhausted. This is the
// idiomatic Go realization of spec §4.D's cooperative "scanDocument": each
// call resumes exactly where the last one left off.
func (s *Scanner) Next() (Token, error) {
	if len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		return t, nil
	}

	if s.fatal != nil {
		return Token{}, s.fatal
	}

	if !s.sawStartDocument {
		s.sawStartDocument = true
		return Token{Type: TokenStartDocument, Encoding: s.Encoding()}, nil
	}

	switch s.mode {
	case modeRawText:
		return s.scanRawText()
	case modePlaintext:
		return s.scanPlaintext()
	default:
		return s.scanContentOrMarkup()
	}
}

// ScanDocument is the literal spec §4.D signature: scanDocument(complete)
// -> more. When complete is false it advances exactly one significant
// token (buffering it for the next Next() call is unnecessary since Next
// already is one-token-per-call); when true it drains to EndDocument/EOF.
// It exists for callers that want the spec's push-until-boundary framing
// instead of driving Next() directly; htmlscan.Parser.Parse uses Next
// directly.
func (s *Scanner) ScanDocument(complete bool) (more bool, err error) {
	if !complete {
		_, err = s.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return err == nil, err
	}

	for {
		_, err = s.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}
