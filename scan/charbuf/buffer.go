// Package charbuf implements the growable character buffer used by the
// scanner to support lookahead and rewind over decoded characters.
package charbuf

import "errors"

// ErrNoData is returned by Rewind when asked to rewind past the start of
// the characters still resident in the buffer.
var ErrNoData = errors.New("charbuf: rewind past start of buffer")

// growthFactor matches the 25% growth spec'd for Buffer.Load.
const growthFactor = 5 / 4.0

// Buffer is a growable array of runes with an unread/read split point, built
// the same way github.com/nussjustin/esi/esiexpr/internal/text.Scanner[T]
// wraps a flat slice with an offset, but adding growth and rewind so the
// scanner can push back characters consumed by a token that turned out to
// be a dead end (e.g. "&foo" with no trailing ';').
//
// Invariant: 0 <= offset <= length <= len(data).
type Buffer struct {
	data   []rune
	offset int // next unread rune
	length int // end of valid data
}

// New returns an empty Buffer with the given initial capacity, raised to
// 64 if smaller.
func New(capacity int) *Buffer {
	if capacity < 64 {
		capacity = 64
	}
	return &Buffer{data: make([]rune, capacity)}
}

// Reset clears the buffer, releasing any referenced data, for reuse across
// parses (the teacher's equivalent is esixml.Reader.Reset clearing nameBuf
// and attrBuf before rebinding to a new source).
func (b *Buffer) Reset() {
	b.offset = 0
	b.length = 0
}

// Len returns the number of unread runes currently resident.
func (b *Buffer) Len() int {
	return b.length - b.offset
}

// Peek returns the rune at relative offset n (0 = next unread rune) without
// consuming it. ok is false if fewer than n+1 runes are resident.
func (b *Buffer) Peek(n int) (r rune, ok bool) {
	if b.offset+n >= b.length {
		return 0, false
	}
	return b.data[b.offset+n], true
}

// Next consumes and returns the next rune.
func (b *Buffer) Next() (r rune, ok bool) {
	if b.offset >= b.length {
		return 0, false
	}
	r = b.data[b.offset]
	b.offset++
	return r, true
}

// Rewind moves the read position back by n runes. It is only legal within
// data still resident in the buffer (spec §3, Scanner buffer invariant).
func (b *Buffer) Rewind(n int) error {
	if n < 0 || n > b.offset {
		return ErrNoData
	}
	b.offset -= n
	return nil
}

// Mark returns the current offset, to later pass to RewindTo.
func (b *Buffer) Mark() int {
	return b.offset
}

// RewindTo rewinds to a previously captured Mark.
func (b *Buffer) RewindTo(mark int) error {
	if mark < 0 || mark > b.offset {
		return ErrNoData
	}
	b.offset = mark
	return nil
}

// Slice returns the runes between two marks without consuming them.
func (b *Buffer) Slice(from, to int) []rune {
	return b.data[from:to]
}

// PreserveFrom shifts data in [from, length) down to index 0, preserving
// characters still referenced by an open token (spec §3: "when refilling,
// any characters still referenced by an open token must be preserved by
// shifting them to index 0 first"). It returns the amount everything moved
// by, so callers can adjust any marks they are holding.
func (b *Buffer) PreserveFrom(from int) int {
	if from <= 0 {
		return 0
	}
	n := copy(b.data, b.data[from:b.length])
	b.length = n
	b.offset -= from
	if b.offset < 0 {
		b.offset = 0
	}
	return from
}

// Grow ensures there is room to append n more runes after length, growing
// the backing array by 25% (spec §4.D.7 Load) when full.
func (b *Buffer) Grow(n int) {
	need := b.length + n
	if need <= len(b.data) {
		return
	}
	newCap := len(b.data)
	for newCap < need {
		grown := int(float64(newCap) * growthFactor)
		if grown <= newCap {
			grown = newCap + n
		}
		newCap = grown
	}
	grown := make([]rune, newCap)
	copy(grown, b.data[:b.length])
	b.data = grown
}

// PushRune appends a single rune, growing the buffer if necessary. Used by
// the scanner's fill loop, which pulls one decoded character at a time.
func (b *Buffer) PushRune(r rune) {
	b.Grow(1)
	b.data[b.length] = r
	b.length++
}

// Append adds runes to the end of the buffer, growing as needed. Nothing
// already resident is discarded.
func (b *Buffer) Append(runes []rune) {
	b.Grow(len(runes))
	copy(b.data[b.length:], runes)
	b.length += len(runes)
}

// Cap returns the current backing-array capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}
