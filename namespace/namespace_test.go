package namespace

import (
	"testing"

	"github.com/htmlscan/htmlscan/balance"
)

func TestBindDefaultsToXHTML(t *testing.T) {
	b := New()
	got := b.Bind(balance.Event{Type: balance.EventStartElement, Name: "div"})
	if got.URI != XHTML {
		t.Fatalf("URI = %q, want %q", got.URI, XHTML)
	}
}

func TestBindSwitchesToSVGSubtree(t *testing.T) {
	b := New()
	b.Bind(balance.Event{Type: balance.EventStartElement, Name: "svg"})
	if !b.InForeignContent() {
		t.Fatalf("expected foreign content after <svg>")
	}

	inner := b.Bind(balance.Event{Type: balance.EventStartElement, Name: "rect"})
	if inner.URI != SVG {
		t.Fatalf("URI = %q, want %q", inner.URI, SVG)
	}

	b.Bind(balance.Event{Type: balance.EventEndElement, Name: "rect"})
	b.Bind(balance.Event{Type: balance.EventEndElement, Name: "svg"})
	if b.InForeignContent() {
		t.Fatalf("expected XHTML again after </svg>")
	}
}

func TestBindMathMLSubtree(t *testing.T) {
	b := New()
	b.Bind(balance.Event{Type: balance.EventStartElement, Name: "math"})
	got := b.Bind(balance.Event{Type: balance.EventStartElement, Name: "mrow"})
	if got.URI != MathML {
		t.Fatalf("URI = %q, want %q", got.URI, MathML)
	}
}
