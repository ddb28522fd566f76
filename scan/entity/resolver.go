package entity

// Resolver holds the incremental state of a named-entity lookup, fed one
// character at a time by the scanner as it reads past "&" (spec §4.C
// "Incremental lookup").
type Resolver struct {
	t             *Trie
	cur           *node
	fed           int // every character passed to Feed, accepted or not
	consumed      int // characters that extended a valid trie path
	validNode     *node
	validConsumed int
	stopped       bool
}

// NewResolver returns a Resolver bound to t. Resolvers are cheap and are
// typically stack-allocated by the scanner per "&" encountered.
func (t *Trie) NewResolver() *Resolver {
	r := &Resolver{}
	r.Reset(t)
	return r
}

// Reset rebinds the Resolver to t (or keeps its current trie, if t is nil)
// and clears all incremental state for reuse.
func (r *Resolver) Reset(t *Trie) {
	if t != nil {
		r.t = t
	}
	r.cur = nil
	r.fed = 0
	r.consumed = 0
	r.validNode = nil
	r.validConsumed = 0
	r.stopped = false
}

// Feed advances the resolver by one character. Result's RewindCount counts
// fed characters outside the match, for a caller that consumes as it
// feeds; a caller that only peeks (as package scan does) uses Consumed
// alone. accepted is false if the
// trie has no transition for c, in which case the resolver is done and
// Result reports the best match seen so far, if any. done is true once no
// further feeding can change the outcome (either no transition exists or a
// terminal, ';'-suffixed node was reached).
func (r *Resolver) Feed(c rune) (accepted, done bool) {
	if r.stopped {
		return false, true
	}
	r.fed++

	var next *node
	if r.consumed == 0 {
		next = r.t.root.child(c)
	} else {
		next = r.cur.child(c)
	}

	if next == nil {
		r.stopped = true
		return false, true
	}

	r.cur = next
	r.consumed++

	if next.hasMatch {
		r.validNode = next
		r.validConsumed = r.consumed
	}

	if next.terminal {
		r.stopped = true
		return true, true
	}

	return true, false
}

// Result describes the outcome of feeding characters into a Resolver.
type Result struct {
	// Matched is true if any prefix of the fed characters is a valid
	// entity name.
	Matched bool

	// Replacement is the resolved replacement text, valid only if Matched.
	Replacement string

	// Consumed is the number of characters that must be treated as part of
	// the matched entity (<= the total number of characters fed).
	Consumed int

	// RewindCount is the number of fed characters that were NOT part of the
	// match and must be pushed back onto the scanner buffer for re-scanning
	// as ordinary character data.
	RewindCount int

	// EndsWithSemicolon is true if the match's name ends in ';'.
	EndsWithSemicolon bool
}

// Result reports the outcome of the characters fed so far. It may be called
// after Feed returns done=true, or early (e.g. the caller ran out of input).
func (r *Resolver) Result() Result {
	if r.validNode == nil {
		return Result{Consumed: 0, RewindCount: r.fed}
	}
	return Result{
		Matched:           true,
		Replacement:       r.validNode.replacement,
		Consumed:          r.validConsumed,
		RewindCount:       r.fed - r.validConsumed,
		EndsWithSemicolon: r.validNode.terminal,
	}
}
