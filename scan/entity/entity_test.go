package entity

import "testing"

func feedAll(t *Trie, s string) Result {
	r := t.NewResolver()
	for _, c := range s {
		if _, done := r.Feed(c); done {
			break
		}
	}
	return r.Result()
}

func TestResolverAmpWithAndWithoutSemicolon(t *testing.T) {
	tr := Build()

	// "&amp;" -- full terminal match.
	got := feedAll(tr, "amp;")
	if !got.Matched || got.Replacement != "&" || !got.EndsWithSemicolon || got.RewindCount != 0 {
		t.Fatalf("amp; = %+v", got)
	}

	// "&amp X" -- legacy match on "amp" (no semicolon), rest is rewound.
	got = feedAll(tr, "amp X")
	if !got.Matched || got.Replacement != "&" || got.EndsWithSemicolon {
		t.Fatalf("amp(no semicolon) = %+v", got)
	}
	if got.Consumed != 3 {
		t.Fatalf("Consumed = %d, want 3", got.Consumed)
	}
	if got.RewindCount != 1 { // " " was fed and consumed by Feed but is not part of the match
		t.Fatalf("RewindCount = %d, want 1", got.RewindCount)
	}
}

func TestResolverNoMatch(t *testing.T) {
	tr := Build()

	got := feedAll(tr, "zzzzzz")
	if got.Matched {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestEntityRoundTrip(t *testing.T) {
	tr := Build()

	for _, e := range entries() {
		r := tr.NewResolver()
		var lastDone bool
		name := e.name
		if !e.legacy {
			name += ";"
		}
		for _, c := range name {
			_, lastDone = r.Feed(c)
			if lastDone {
				break
			}
		}
		res := r.Result()
		if !res.Matched {
			t.Fatalf("entity %q: no match", e.name)
		}
		if res.Replacement != e.replacement {
			t.Fatalf("entity %q: replacement = %q, want %q", e.name, res.Replacement, e.replacement)
		}
	}
}

func TestResolveDecimalAndHex(t *testing.T) {
	if got := ResolveDecimal("38"); got.Text != "&" {
		t.Fatalf("ResolveDecimal(38) = %q, want &", got.Text)
	}
	if got := ResolveHex("26"); got.Text != "&" {
		t.Fatalf("ResolveHex(26) = %q, want &", got.Text)
	}
}

func TestResolveWindows1252Remap(t *testing.T) {
	got := ResolveDecimal("128") // 0x80 -> EURO SIGN
	if !got.Replaced || got.Text != "€" {
		t.Fatalf("ResolveDecimal(128) = %+v, want EURO SIGN replacement", got)
	}
}

func TestResolveSurrogateRejected(t *testing.T) {
	got := ResolveHex("D800")
	if !got.Rejected {
		t.Fatalf("surrogate should be rejected, got %+v", got)
	}
}

func TestResolveOutOfRangeRejected(t *testing.T) {
	got := ResolveHex("110000")
	if !got.Rejected {
		t.Fatalf("out-of-range code point should be rejected, got %+v", got)
	}
}
