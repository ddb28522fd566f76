package source

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// Decoder maps bytes from the underlying Stream to Unicode characters using
// one named encoding (spec §4.B). Decoders are swappable mid-stream: when
// the scanner detects an incompatible <meta charset> it discards the
// current Decoder and builds a fresh one over a replayed Stream.
type Decoder interface {
	// ReadRune returns the next decoded character, its width in source
	// bytes, and an error (io.EOF at end of input).
	ReadRune() (r rune, size int, err error)

	// Encoding returns the canonical name this Decoder was built for.
	Encoding() string
}

// win1252Table maps the Windows-1252 bytes 0x80-0x9F that diverge from
// ISO-8859-1/Latin-1 to their Unicode code points. Bytes in this range that
// are unassigned in Windows-1252 (0x81, 0x8D, 0x8F, 0x90, 0x9D) decode to
// the same code point as Latin-1, matching common browser behavior.
var win1252Table = map[byte]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

// NewDecoder builds a Decoder for the given (already canonicalized)
// encoding name, reading from r.
func NewDecoder(encoding string, r io.Reader) (Decoder, error) {
	br := bufio.NewReader(r)
	switch encoding {
	case "UTF-8", "US-ASCII":
		return &utf8Decoder{br: br, encoding: encoding}, nil
	case "ISO-8859-1":
		return &byteTableDecoder{br: br, encoding: encoding}, nil
	case "Windows-1252":
		return &byteTableDecoder{br: br, encoding: encoding, table: win1252Table}, nil
	case "UTF-16LE":
		return &utf16Decoder{br: br, encoding: encoding, bigEndian: false}, nil
	case "UTF-16BE":
		return &utf16Decoder{br: br, encoding: encoding, bigEndian: true}, nil
	default:
		return nil, fmt.Errorf("source: unsupported encoding %q", encoding)
	}
}

type utf8Decoder struct {
	br       *bufio.Reader
	encoding string
}

func (d *utf8Decoder) Encoding() string { return d.encoding }

func (d *utf8Decoder) ReadRune() (rune, int, error) {
	r, size, err := d.br.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	if r == utf8.RuneError && size == 1 {
		// Invalid byte sequence: emit the replacement character and
		// advance by one byte, the same lenient recovery the scanner
		// applies to every other malformed construct (spec §4.D.8).
		return utf8.RuneError, 1, nil
	}
	return r, size, nil
}

// byteTableDecoder handles single-byte encodings where every byte maps to
// exactly one Unicode code point, either by identity (ISO-8859-1/Latin-1)
// or via a small remap table for the bytes that diverge (Windows-1252).
// Grounded on arturoeanton-go-xml/xml/util.go's hand-rolled charsetReader
// for ISO-8859-1, generalized to also cover Windows-1252.
type byteTableDecoder struct {
	br       *bufio.Reader
	encoding string
	table    map[byte]rune
}

func (d *byteTableDecoder) Encoding() string { return d.encoding }

func (d *byteTableDecoder) ReadRune() (rune, int, error) {
	b, err := d.br.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	if r, ok := d.table[b]; ok {
		return r, 1, nil
	}
	return rune(b), 1, nil
}

type utf16Decoder struct {
	br        *bufio.Reader
	encoding  string
	bigEndian bool
}

func (d *utf16Decoder) Encoding() string { return d.encoding }

func (d *utf16Decoder) readUnit() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(d.br, b[:]); err != nil {
		return 0, err
	}
	if d.bigEndian {
		return uint16(b[0])<<8 | uint16(b[1]), nil
	}
	return uint16(b[1])<<8 | uint16(b[0]), nil
}

func (d *utf16Decoder) ReadRune() (rune, int, error) {
	u1, err := d.readUnit()
	if err != nil {
		return 0, 0, err
	}

	if !utf16.IsSurrogate(rune(u1)) {
		return rune(u1), 2, nil
	}

	u2, err := d.readUnit()
	if err != nil {
		// Lone high surrogate at EOF: emit the replacement character rather
		// than failing the whole parse (spec §4.D.8 recovered malformation).
		return utf8.RuneError, 2, nil
	}

	r := utf16.DecodeRune(rune(u1), rune(u2))
	if r == utf8.RuneError {
		return utf8.RuneError, 4, nil
	}
	return r, 4, nil
}
