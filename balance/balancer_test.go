package balance

import (
	"testing"

	"github.com/htmlscan/htmlscan/scan"
)

func startTag(name string) scan.Token {
	return scan.Token{Type: scan.TokenStartTag, Name: scan.Name{Local: name}}
}

func endTag(name string) scan.Token {
	return scan.Token{Type: scan.TokenEndTag, Name: scan.Name{Local: name}}
}

func eventNames(t *testing.T, events []Event) []string {
	t.Helper()
	out := make([]string, len(events))
	for i, e := range events {
		if e.Name != "" {
			out[i] = e.Type.String() + ":" + e.Name
		} else {
			out[i] = e.Type.String()
		}
	}
	return out
}

func feedAll(t *testing.T, b *Balancer, toks ...scan.Token) []Event {
	t.Helper()
	var all []Event
	for _, tok := range toks {
		events, err := b.Feed(tok)
		if err != nil {
			t.Fatalf("Feed(%v): %v", tok.Type, err)
		}
		all = append(all, events...)
	}
	return all
}

func TestBalancerSynthesizesRootForBareText(t *testing.T) {
	b := New()
	events := feedAll(t, b, scan.Token{Type: scan.TokenCharacters, Data: "hi"})

	want := []string{"StartElement:html", "StartElement:head", "EndElement:head", "StartElement:body", "Characters"}
	got := eventNames(t, events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBalancerWellFormedNesting(t *testing.T) {
	b := New()
	events := feedAll(t, b,
		startTag("html"), startTag("body"), startTag("p"), scan.Token{Type: scan.TokenCharacters, Data: "x"},
		endTag("p"), endTag("body"), endTag("html"),
	)
	want := []string{
		"StartElement:html", "StartElement:body", "StartElement:p", "Characters",
		"EndElement:p", "EndElement:body", "EndElement:html",
	}
	got := eventNames(t, events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestBalancerLiClosesOnOpen(t *testing.T) {
	b := New()
	events := feedAll(t, b, startTag("html"), startTag("body"), startTag("ul"), startTag("li"), startTag("li"))
	got := eventNames(t, events)

	foundSynthClose := false
	for _, e := range events {
		if e.Type == EventEndElement && e.Name == "li" && e.Synthesized {
			foundSynthClose = true
		}
	}
	if !foundSynthClose {
		t.Fatalf("expected a synthesized </li> before the second <li>, got %v", got)
	}
}

func TestBalancerDuplicateSingletonIgnored(t *testing.T) {
	var ignored []string
	b := New()
	b.SetListener(listenerFunc{onStart: func(name string, _ scan.Position) { ignored = append(ignored, name) }})

	feedAll(t, b, startTag("html"), startTag("body"), startTag("html"))

	if len(ignored) != 1 || ignored[0] != "html" {
		t.Fatalf("expected one ignored duplicate <html>, got %v", ignored)
	}
}

func TestBalancerUnmatchedEndTagIgnored(t *testing.T) {
	var ignored []string
	b := New()
	b.SetListener(listenerFunc{onEnd: func(name string, _ scan.Position) { ignored = append(ignored, name) }})

	events := feedAll(t, b, startTag("html"), startTag("body"), endTag("span"))

	if len(ignored) != 1 || ignored[0] != "span" {
		t.Fatalf("expected one ignored </span>, got %v", ignored)
	}
	for _, e := range events {
		if e.Type == EventEndElement && e.Name == "span" {
			t.Fatalf("unmatched end tag should not produce an event")
		}
	}
}

func TestBalancerEmptyElementAutoCloses(t *testing.T) {
	b := New()
	events := feedAll(t, b, startTag("html"), startTag("body"), startTag("br"))

	found := false
	for i, e := range events {
		if e.Type == EventStartElement && e.Name == "br" {
			if i+1 >= len(events) || events[i+1].Type != EventEndElement || events[i+1].Name != "br" {
				t.Fatalf("expected <br> to be immediately followed by its EndElement")
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("no <br> StartElement found")
	}
}

func TestBalancerSynthesizesMissingTbody(t *testing.T) {
	b := New()
	events := feedAll(t, b,
		startTag("html"), startTag("body"), startTag("table"),
		startTag("tr"), startTag("td"), scan.Token{Type: scan.TokenCharacters, Data: "hi"},
		endTag("td"), endTag("tr"), endTag("table"),
	)
	want := []string{
		"StartElement:html", "StartElement:body", "StartElement:table",
		"StartElement:tbody", "StartElement:tr", "StartElement:td", "Characters",
		"EndElement:td", "EndElement:tr", "EndElement:tbody", "EndElement:table",
	}
	got := eventNames(t, events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}

	var synthTbody bool
	for _, e := range events {
		if e.Type == EventStartElement && e.Name == "tbody" && e.Synthesized {
			synthTbody = true
		}
	}
	if !synthTbody {
		t.Fatalf("expected a synthesized <tbody>, got %v", events)
	}
}

func TestBalancerEndOfInputClosesOpenElements(t *testing.T) {
	b := New()
	events := feedAll(t, b, startTag("html"), startTag("body"), startTag("div"),
		scan.Token{Type: scan.TokenEndDocument})

	last := events[len(events)-1]
	if last.Type != EventEndDocument {
		t.Fatalf("last event = %v, want EndDocument", last.Type)
	}
	if b.Depth() != 0 {
		t.Fatalf("Depth() = %d after EndDocument, want 0", b.Depth())
	}
}

type listenerFunc struct {
	onStart func(name string, at scan.Position)
	onEnd   func(name string, at scan.Position)
}

func (l listenerFunc) IgnoredStartElement(name string, at scan.Position) {
	if l.onStart != nil {
		l.onStart(name, at)
	}
}

func (l listenerFunc) IgnoredEndElement(name string, at scan.Position) {
	if l.onEnd != nil {
		l.onEnd(name, at)
	}
}
