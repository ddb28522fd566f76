package scan

import (
	"io"
	"strings"
	"unicode"
)

// rawTextTags are the elements whose content is scanned verbatim up to their
// matching end tag (spec §4.D.3 "Raw text"/"Escapable raw text"). Component
// D recognizes only these hardcoded names; it does not consult package
// element; the balancer (component F) is the one place element categories
// and tokens meet.
var rawTextTags = map[string]bool{"script": true, "style": true, "textarea": true, "title": true}

const plaintextTag = "plaintext"

// finishDocument emits the single EndDocument token and then io.EOF on
// every subsequent call.
func (s *Scanner) finishDocument() (Token, error) {
	if s.fatal != nil {
		return Token{}, s.fatal
	}
	if s.endEmitted {
		return Token{}, io.EOF
	}
	s.endEmitted = true
	return Token{Type: TokenEndDocument, Augmentation: Augmentation{Begin: s.pos(), End: s.pos()}}, nil
}

func (s *Scanner) scanContentOrMarkup() (Token, error) {
	r, ok := s.peekRune(0)
	if !ok {
		return s.finishDocument()
	}
	if r == '<' {
		return s.scanMarkup()
	}
	if r == '&' && s.opts.NotifyCharRefs {
		return s.scanNotifiedEntity()
	}
	return s.scanCharacterRun()
}

// scanCharacterRun accumulates a Characters token, resolving character
// references inline, until '<', EOF, or (when NotifyCharRefs is set) the
// next '&' boundary.
func (s *Scanner) scanCharacterRun() (Token, error) {
	begin := s.pos()
	var b strings.Builder

	for {
		r, ok := s.peekRune(0)
		if !ok {
			break
		}
		if r == '<' {
			break
		}
		if r == '&' {
			if s.opts.NotifyCharRefs {
				break
			}
			if text, _, matched := s.resolveCharRef(false); matched {
				b.WriteString(text)
				continue
			}
		}
		rr, _ := s.readRune()
		b.WriteRune(rr)
	}

	if b.Len() == 0 {
		// Nothing accumulated (an immediate '&' under NotifyCharRefs): fall
		// through to resolve it directly rather than emitting an empty token.
		return s.scanNotifiedEntity()
	}

	return Token{Type: TokenCharacters, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

// scanNotifiedEntity resolves one "&..." reference and queues its decoded
// text, wrapped in StartGeneralEntity/EndGeneralEntity bracketing tokens
// (spec §6.4 NotifyCharRefs), returning the first of the three.
func (s *Scanner) scanNotifiedEntity() (Token, error) {
	begin := s.pos()
	text, _, matched := s.resolveCharRef(false)
	if !matched {
		r, _ := s.readRune()
		return Token{Type: TokenCharacters, Data: string(r), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
	}

	end := s.pos()
	aug := Augmentation{Begin: begin, End: end}
	s.queue(Token{Type: TokenCharacters, Data: text, Augmentation: aug})
	s.queue(Token{Type: TokenEndGeneralEntity, Augmentation: aug})
	return Token{Type: TokenStartGeneralEntity, Augmentation: aug}, nil
}

// scanMarkup dispatches on the character following '<' (spec §4.D.2).
func (s *Scanner) scanMarkup() (Token, error) {
	begin := s.pos()
	s.readRune() // consume '<'

	r, ok := s.peekRune(0)
	if !ok {
		return Token{Type: TokenCharacters, Data: "<", Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
	}

	switch {
	case r == '!':
		s.readRune()
		return s.scanDecl(begin)
	case r == '/':
		s.readRune()
		return s.scanEndTag(begin)
	case r == '?':
		return s.scanProcessingInstruction(begin)
	case isNameStart(r):
		return s.scanStartTag(begin)
	default:
		// Not a recognized markup construct: emit '<' as literal text (spec
		// §4.D.8 recovered malformation).
		return Token{Type: TokenCharacters, Data: "<", Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
	}
}

func (s *Scanner) scanDecl(begin Position) (Token, error) {
	if s.lookingAt("--") {
		s.skip(2)
		return s.scanComment(begin)
	}
	if s.lookingAt("[CDATA[") {
		s.skip(7)
		return s.scanCDATA(begin)
	}
	if s.lookingAtFold("DOCTYPE") {
		s.skip(7)
		return s.scanDoctype(begin)
	}
	return s.scanBogusComment(begin)
}

func (s *Scanner) scanComment(begin Position) (Token, error) {
	var b strings.Builder
	for {
		if s.lookingAt("-->") {
			s.skip(3)
			break
		}
		r, ok := s.readRune()
		if !ok {
			break // unterminated comment at EOF: recovered, spec §4.D.8
		}
		b.WriteRune(r)
	}
	return Token{Type: TokenComment, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

func (s *Scanner) scanBogusComment(begin Position) (Token, error) {
	var b strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || r == '>' {
			if ok {
				s.readRune()
			}
			break
		}
		rr, _ := s.readRune()
		b.WriteRune(rr)
	}
	return Token{Type: TokenComment, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

func (s *Scanner) scanCDATA(begin Position) (Token, error) {
	var b strings.Builder
	for {
		if s.lookingAt("]]>") {
			s.skip(3)
			break
		}
		r, ok := s.readRune()
		if !ok {
			break
		}
		b.WriteRune(r)
	}

	if !s.opts.CDATASections {
		return Token{Type: TokenCharacters, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
	}

	end := s.pos()
	s.queue(Token{Type: TokenCDATACharacters, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: end}})
	s.queue(Token{Type: TokenEndCDATA, Augmentation: Augmentation{Begin: end, End: end}})
	return Token{Type: TokenStartCDATA, Augmentation: Augmentation{Begin: begin, End: begin}}, nil
}

// scanProcessingInstruction scans a "<?...?>" (or a bogus, unterminated
// one) in strictly linear time and space: it copies each character exactly
// once into the builder and never rescans already-read input, which is
// what defeats the quadratic-blowup class of defect behind CVE-2022-29546
// (spec scenario S5).
func (s *Scanner) scanProcessingInstruction(begin Position) (Token, error) {
	s.readRune() // consume '?'

	var target strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || isSpace(r) || r == '?' || r == '>' {
			break
		}
		rr, _ := s.readRune()
		target.WriteRune(rr)
	}
	s.skipSpaces()

	var data strings.Builder
	for {
		if s.lookingAt("?>") {
			s.skip(2)
			break
		}
		r, ok := s.readRune()
		if !ok {
			break
		}
		data.WriteRune(r)
	}

	return Token{
		Type:         TokenProcessingInstruction,
		Target:       target.String(),
		Data:         data.String(),
		Augmentation: Augmentation{Begin: begin, End: s.pos()},
	}, nil
}

func (s *Scanner) scanDoctype(begin Position) (Token, error) {
	s.skipSpaces()
	d := &Doctype{}
	d.Name = s.readBareWord()
	s.skipSpaces()

	if s.lookingAtFold("PUBLIC") {
		s.skip(6)
		s.skipSpaces()
		d.PublicID = s.readQuotedOrBare()
		s.skipSpaces()
		d.SystemID = s.readQuotedOrBare()
	} else if s.lookingAtFold("SYSTEM") {
		s.skip(6)
		s.skipSpaces()
		d.SystemID = s.readQuotedOrBare()
	}

	// Consume up to and including '>', tolerating an internal subset.
	for {
		r, ok := s.readRune()
		if !ok || r == '>' {
			break
		}
	}

	return Token{Type: TokenDoctype, Doctype: d, Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

func (s *Scanner) scanStartTag(begin Position) (Token, error) {
	name := s.readTagName()
	attrs := s.scanAttrList()

	s.skipSpaces()
	closed := false
	if r, ok := s.peekRune(0); ok && r == '/' {
		s.readRune()
		closed = true
	}
	if r, ok := s.peekRune(0); ok && r == '>' {
		s.readRune()
	}

	lower := strings.ToLower(name)
	if !closed {
		if rawTextTags[lower] {
			s.mode = modeRawText
			s.rawTextName = lower
		} else if lower == plaintextTag {
			s.mode = modePlaintext
		}
	}

	return Token{
		Type:         TokenStartTag,
		Name:         Name{Local: name},
		Attrs:        attrs,
		Closed:       closed,
		Augmentation: Augmentation{Begin: begin, End: s.pos()},
	}, nil
}

func (s *Scanner) scanEndTag(begin Position) (Token, error) {
	name := s.readTagName()
	// Tolerate garbage before '>' in a malformed end tag (spec §4.D.8).
	for {
		r, ok := s.readRune()
		if !ok || r == '>' {
			break
		}
	}
	return Token{Type: TokenEndTag, Name: Name{Local: name}, Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

func (s *Scanner) scanAttrList() []Attr {
	var attrs []Attr
	var seen map[string]bool
	for {
		s.skipSpaces()
		r, ok := s.peekRune(0)
		if !ok || r == '>' || r == '/' {
			return attrs
		}
		if !isNameStart(r) && !isNameChar(r) {
			// Not a valid attribute-name start: skip the stray byte and
			// keep scanning rather than aborting the whole tag.
			s.readRune()
			continue
		}
		a := s.scanAttr()
		// First wins (spec §3 "Attribute collection"): a later attribute
		// with the same raw name is scanned (so it doesn't corrupt the
		// rest of the tag) but discarded from the result.
		if seen == nil {
			seen = make(map[string]bool, 4)
		}
		if seen[a.Name.Local] {
			continue
		}
		seen[a.Name.Local] = true
		attrs = append(attrs, a)
	}
}

func (s *Scanner) scanAttr() Attr {
	begin := s.pos()
	name := s.readAttrName()
	s.skipSpaces()

	var rawValue, value string
	specified := false
	if r, ok := s.peekRune(0); ok && r == '=' {
		s.readRune()
		s.skipSpaces()
		rawValue, value = s.scanAttrValue()
		specified = true
	}

	return Attr{
		Name:               Name{Local: name},
		Value:              value,
		NonNormalizedValue: rawValue,
		Specified:          specified,
		Augmentation:       Augmentation{Begin: begin, End: s.pos()},
	}
}

func (s *Scanner) scanAttrValue() (raw, decoded string) {
	r, ok := s.peekRune(0)
	if ok && (r == '"' || r == '\'') {
		quote := r
		s.readRune()
		var rb, db strings.Builder
		for {
			r, ok := s.peekRune(0)
			if !ok || r == quote {
				if ok {
					s.readRune()
				}
				break
			}
			if r == '&' {
				if text, _, matched := s.resolveCharRef(true); matched {
					rb.WriteRune('&')
					db.WriteString(text)
					continue
				}
			}
			rr, _ := s.readRune()
			rb.WriteRune(rr)
			db.WriteRune(rr)
		}
		return rb.String(), db.String()
	}

	// Unquoted value: runs until whitespace or '>'.
	var rb, db strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || isSpace(r) || r == '>' {
			break
		}
		if r == '&' {
			if text, _, matched := s.resolveCharRef(true); matched {
				rb.WriteRune('&')
				db.WriteString(text)
				continue
			}
		}
		rr, _ := s.readRune()
		rb.WriteRune(rr)
		db.WriteRune(rr)
	}
	return rb.String(), db.String()
}

// scanRawText consumes text verbatim until the matching "</name" end tag
// (case-insensitively), per the persistent raw-text mode entered by
// scanStartTag (spec §4.D.3).
func (s *Scanner) scanRawText() (Token, error) {
	begin := s.pos()
	var b strings.Builder

	for {
		if s.lookingAtCloseTag(s.rawTextName) {
			break
		}
		r, ok := s.readRune()
		if !ok {
			s.mode = modeContent
			break
		}
		b.WriteRune(r)
	}

	if b.Len() > 0 {
		return Token{Type: TokenCharacters, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
	}

	if _, ok := s.peekRune(0); !ok {
		s.mode = modeContent
		return s.finishDocument()
	}

	// At the end tag itself: consume it like any other end tag and return
	// to ordinary content scanning.
	s.mode = modeContent
	s.readRune() // '<'
	s.readRune() // '/'
	return s.scanEndTag(begin)
}

func (s *Scanner) scanPlaintext() (Token, error) {
	begin := s.pos()
	var b strings.Builder
	for {
		r, ok := s.readRune()
		if !ok {
			break
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return s.finishDocument()
	}
	return Token{Type: TokenCharacters, Data: b.String(), Augmentation: Augmentation{Begin: begin, End: s.pos()}}, nil
}

// lookingAtCloseTag reports whether the upcoming characters spell
// "</name" (case-insensitive) followed by '>', '/', or whitespace, without
// consuming anything.
func (s *Scanner) lookingAtCloseTag(name string) bool {
	if r, ok := s.peekRune(0); !ok || r != '<' {
		return false
	}
	if r, ok := s.peekRune(1); !ok || r != '/' {
		return false
	}
	i := 2
	for _, want := range name {
		r, ok := s.peekRune(i)
		if !ok || unicode.ToLower(r) != unicode.ToLower(want) {
			return false
		}
		i++
	}
	r, ok := s.peekRune(i)
	return !ok || r == '>' || r == '/' || isSpace(r)
}

// lookingAt reports (without consuming) whether the literal ASCII string
// lit appears next.
func (s *Scanner) lookingAt(lit string) bool {
	for i, want := range lit {
		r, ok := s.peekRune(i)
		if !ok || r != want {
			return false
		}
	}
	return true
}

// lookingAtFold is lookingAt with ASCII case folding, used for DOCTYPE/
// PUBLIC/SYSTEM keywords which HTML treats case-insensitively.
func (s *Scanner) lookingAtFold(lit string) bool {
	for i, want := range lit {
		r, ok := s.peekRune(i)
		if !ok || unicode.ToUpper(r) != unicode.ToUpper(want) {
			return false
		}
	}
	return true
}

func (s *Scanner) skip(n int) {
	for i := 0; i < n; i++ {
		s.readRune()
	}
}

func (s *Scanner) skipSpaces() {
	for {
		r, ok := s.peekRune(0)
		if !ok || !isSpace(r) {
			return
		}
		s.readRune()
	}
}

func (s *Scanner) readTagName() string {
	var b strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || !isNameChar(r) {
			break
		}
		rr, _ := s.readRune()
		b.WriteRune(rr)
	}
	return b.String()
}

func (s *Scanner) readAttrName() string {
	var b strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || isSpace(r) || r == '=' || r == '>' || r == '/' {
			break
		}
		rr, _ := s.readRune()
		b.WriteRune(rr)
	}
	return b.String()
}

func (s *Scanner) readBareWord() string {
	var b strings.Builder
	for {
		r, ok := s.peekRune(0)
		if !ok || isSpace(r) || r == '>' {
			break
		}
		rr, _ := s.readRune()
		b.WriteRune(rr)
	}
	return b.String()
}

func (s *Scanner) readQuotedOrBare() string {
	r, ok := s.peekRune(0)
	if ok && (r == '"' || r == '\'') {
		quote := r
		s.readRune()
		var b strings.Builder
		for {
			r, ok := s.peekRune(0)
			if !ok || r == quote {
				if ok {
					s.readRune()
				}
				break
			}
			rr, _ := s.readRune()
			b.WriteRune(rr)
		}
		return b.String()
	}
	return s.readBareWord()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f'
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == ':' || r == '_' || r == '.'
}
