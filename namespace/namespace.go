// Package namespace implements the optional namespace binder from spec
// §4.G: it walks the balancer's Event stream and assigns each element a
// namespace URI, defaulting to XHTML and switching to MathML/SVG for the
// subtrees rooted at a <math> or <svg> element (a foreign-content region),
// the same "walk the tree once, carry a scope stack" shape as the
// teacher's esixml.Reader tracks an active-namespace stack while scanning
// attributes for "xmlns"/"xmlns:*" declarations.
package namespace

import (
	"strings"

	"github.com/htmlscan/htmlscan/balance"
)

// Well-known namespace URIs (spec §4.G).
const (
	XHTML = "http://www.w3.org/1999/xhtml"
	MathML = "http://www.w3.org/1998/Math/MathML"
	SVG    = "http://www.w3.org/2000/svg"
)

// Binder assigns namespaces to a stream of balance.Event values. It is
// stateful across calls to Bind: foreign-content scope is a stack, exactly
// mirroring the balancer's own open-element stack one level behind it.
type Binder struct {
	scopes []scope
}

type scope struct {
	elementName string
	uri         string
	prefixes    map[string]string // xmlns:prefix declarations active in this scope
}

// New returns a Binder starting in the XHTML namespace.
func New() *Binder {
	return &Binder{scopes: []scope{{uri: XHTML}}}
}

// Binding is the namespace assigned to one element. xmlns:* declarations
// found on a start tag are kept in the Binder's scope, not in the Binding.
type Binding struct {
	URI    string
	Prefix string // Bind leaves this empty; it assigns no prefixes
}

// Bind processes one Event and returns the Binding that applies to it. For
// StartElement/EndElement this is the element's own namespace; for every
// other event type it is the namespace of the innermost currently-open
// element (relevant for, e.g., deciding how to interpret CDATA inside a
// foreign-content subtree).
func (b *Binder) Bind(e balance.Event) Binding {
	switch e.Type {
	case balance.EventStartElement:
		return b.bindStart(e)
	case balance.EventEndElement:
		return b.bindEnd(e)
	default:
		return Binding{URI: b.current().uri}
	}
}

func (b *Binder) bindStart(e balance.Event) Binding {
	parent := b.current()
	uri := parent.uri

	switch strings.ToLower(e.Name) {
	case "svg":
		uri = SVG
	case "math":
		uri = MathML
	}

	prefixes := map[string]string{}
	for _, a := range e.Attrs {
		if a.Name.Local == "xmlns" {
			prefixes[""] = a.Value
			uri = a.Value
		} else if a.Name.Space == "xmlns" {
			prefixes[a.Name.Local] = a.Value
		}
	}

	b.scopes = append(b.scopes, scope{elementName: e.Name, uri: uri, prefixes: prefixes})
	return Binding{URI: uri}
}

func (b *Binder) bindEnd(e balance.Event) Binding {
	// Pop scopes down to (and including) the matching element; a
	// synthesized end that closed several elements at once will have
	// produced one EndElement per popped frame, each handled individually
	// by the balancer, so a single pop here always matches.
	uri := b.current().uri
	for i := len(b.scopes) - 1; i >= 1; i-- {
		if b.scopes[i].elementName == e.Name {
			uri = b.scopes[i].uri
			b.scopes = b.scopes[:i]
			break
		}
	}
	return Binding{URI: uri}
}

func (b *Binder) current() scope {
	return b.scopes[len(b.scopes)-1]
}

// InForeignContent reports whether the innermost open element belongs to a
// non-XHTML namespace (spec §4.G "foreign-content subtree").
func (b *Binder) InForeignContent() bool {
	return b.current().uri != XHTML
}
