package balance

import (
	"strings"
	"sync"

	"github.com/htmlscan/htmlscan/element"
	"github.com/htmlscan/htmlscan/scan"
)

// Listener receives notifications for markup the balancer recovered from
// without being able to preserve exactly (spec §4.F.3): a duplicate
// singleton, or an end tag that did not match anything open.
type Listener interface {
	IgnoredStartElement(name string, at scan.Position)
	IgnoredEndElement(name string, at scan.Position)
}

type frame struct {
	name        string
	desc        *element.Descriptor
	synthesized bool
}

// Balancer is the tag balancer from spec §4.F. It consumes scan.Token
// values one at a time via Feed and produces a tree-shaped Event stream,
// maintaining an open-element stack the same way the teacher's parser
// maintains its stack of Nodes via push/pushAndEnter/exit, except here the
// stack is driven by element categories rather than a fixed ESI grammar.
type Balancer struct {
	cat   *element.Catalog
	stack []frame

	seenSingleton map[string]bool
	rootEnsured   bool

	// insertHTMLBody controls whether ensureRoot synthesizes html/head/body
	// for bare content (spec §6.4 FeatureInsertHTMLBody); defaults to true
	// via reset, matching the feature's documented default.
	insertHTMLBody bool

	listener Listener
}

var balancerPool = sync.Pool{
	New: func() any { return &Balancer{} },
}

// Get returns a pooled Balancer ready for a new document, for callers that
// parse many documents and want to amortize allocation (spec §5, mirroring
// the teacher's getParser/putParser).
func Get() *Balancer {
	b, _ := balancerPool.Get().(*Balancer)
	b.reset()
	return b
}

// Put returns b to the pool after resetting it. b must not be used again
// afterwards.
func Put(b *Balancer) {
	b.reset()
	balancerPool.Put(b)
}

// New returns a standalone Balancer, for callers that do not need pooling.
func New() *Balancer {
	b := &Balancer{}
	b.reset()
	return b
}

func (b *Balancer) reset() {
	b.cat = element.Default()
	b.stack = b.stack[:0]
	b.seenSingleton = make(map[string]bool, 4)
	b.rootEnsured = false
	b.insertHTMLBody = true
	b.listener = nil
}

// SetListener registers l to be notified of recovered malformations. A nil
// listener (the default) silently drops the notifications.
func (b *Balancer) SetListener(l Listener) {
	b.listener = l
}

// SetInsertHTMLBody toggles synthesizing html/head/body for content that
// arrives with nothing open yet (spec §6.4 FeatureInsertHTMLBody). Enabled
// by default; disabling it means such content is emitted with no
// synthesized ancestors at all.
func (b *Balancer) SetInsertHTMLBody(enabled bool) {
	b.insertHTMLBody = enabled
}

// Depth reports how many elements are currently open.
func (b *Balancer) Depth() int {
	return len(b.stack)
}

// Feed advances the balancer by one scanner token and returns the (zero or
// more) tree-level events it produces. Most tokens produce exactly one
// event; a start tag can produce several (synthesized ancestor closes, the
// element itself, and an immediate synthesized close for EMPTY elements).
func (b *Balancer) Feed(tok scan.Token) ([]Event, error) {
	switch tok.Type {
	case scan.TokenStartDocument:
		return []Event{{Type: EventStartDocument, Augmentation: tok.Augmentation}}, nil

	case scan.TokenEndDocument:
		return b.finish(tok), nil

	case scan.TokenDoctype:
		return []Event{{Type: EventDoctype, Doctype: tok.Doctype, Augmentation: tok.Augmentation}}, nil

	case scan.TokenStartTag:
		return b.startElement(tok), nil

	case scan.TokenEndTag:
		return b.endElement(tok), nil

	case scan.TokenCharacters:
		out := b.ensureRoot(tok.Augmentation.Begin)
		out = append(out, Event{Type: EventCharacters, Data: tok.Data, Augmentation: tok.Augmentation})
		return out, nil

	case scan.TokenComment:
		return []Event{{Type: EventComment, Data: tok.Data, Augmentation: tok.Augmentation}}, nil

	case scan.TokenProcessingInstruction:
		return []Event{{
			Type:         EventProcessingInstruction,
			Target:       tok.Target,
			Data:         tok.Data,
			Augmentation: tok.Augmentation,
		}}, nil

	case scan.TokenStartCDATA:
		out := b.ensureRoot(tok.Augmentation.Begin)
		out = append(out, Event{Type: EventStartCDATA, Augmentation: tok.Augmentation})
		return out, nil
	case scan.TokenCDATACharacters:
		return []Event{{Type: EventCDATACharacters, Data: tok.Data, Augmentation: tok.Augmentation}}, nil
	case scan.TokenEndCDATA:
		return []Event{{Type: EventEndCDATA, Augmentation: tok.Augmentation}}, nil

	case scan.TokenStartGeneralEntity, scan.TokenEndGeneralEntity:
		// The bracketing itself is a scan-level notification (spec §6.4
		// NotifyCharRefs); the balancer's tree model only cares about the
		// Characters token nested between them, handled above.
		return nil, nil

	default:
		return nil, nil
	}
}

// ensureRoot synthesizes "html", "head"/"/head", and "body" the first time
// content arrives with nothing open yet (spec §4.F.4 "character data
// outside body").
func (b *Balancer) ensureRoot(at scan.Position) []Event {
	if b.rootEnsured {
		return nil
	}
	b.rootEnsured = true

	if !b.insertHTMLBody {
		return nil
	}

	aug := scan.Augmentation{Begin: at, End: at, Synthesized: true}

	htmlDesc := b.cat.Lookup("html")
	b.stack = append(b.stack, frame{name: "html", desc: htmlDesc, synthesized: true})
	b.seenSingleton["html"] = true

	out := []Event{{Type: EventStartElement, Name: "html", Synthesized: true, Augmentation: aug}}
	out = append(out,
		Event{Type: EventStartElement, Name: "head", Synthesized: true, Augmentation: aug},
		Event{Type: EventEndElement, Name: "head", Synthesized: true, Augmentation: aug},
	)
	b.seenSingleton["head"] = true

	bodyDesc := b.cat.Lookup("body")
	b.stack = append(b.stack, frame{name: "body", desc: bodyDesc, synthesized: true})
	b.seenSingleton["body"] = true
	out = append(out, Event{Type: EventStartElement, Name: "body", Synthesized: true, Augmentation: aug})

	return out
}

// ensureAncestor synthesizes the missing ancestor chain required by desc's
// AllowedParents (spec §4.F.2 step 2): while desc has a non-empty
// AllowedParents set and none of it is currently open, open
// desc.SynthesizeAncestor and repeat the check against that ancestor's own
// requirement, so a chain like tr -> tbody -> table can synthesize more
// than one level when needed.
func (b *Balancer) ensureAncestor(desc *element.Descriptor, at scan.Position) []Event {
	var out []Event
	for len(desc.AllowedParents) > 0 && !b.hasAncestorIn(desc.AllowedParents) {
		name := desc.SynthesizeAncestor
		if name == "" {
			break
		}
		parent := b.cat.Lookup(name)
		out = append(out, b.pushSynthesized(name, parent, at)...)
		desc = parent
	}
	return out
}

// hasAncestorIn reports whether any element currently open is in names.
func (b *Balancer) hasAncestorIn(names map[string]bool) bool {
	for _, f := range b.stack {
		if names[f.name] {
			return true
		}
	}
	return false
}

// pushSynthesized opens a synthesized element, the same bookkeeping
// ensureRoot does for html/head/body, generalized to any descriptor.
func (b *Balancer) pushSynthesized(name string, desc *element.Descriptor, at scan.Position) []Event {
	b.stack = append(b.stack, frame{name: name, desc: desc, synthesized: true})
	if desc.Singleton {
		b.seenSingleton[name] = true
	}
	aug := scan.Augmentation{Begin: at, End: at, Synthesized: true}
	return []Event{{Type: EventStartElement, Name: name, Synthesized: true, Augmentation: aug}}
}

func (b *Balancer) startElement(tok scan.Token) []Event {
	name := strings.ToLower(tok.Name.Local)
	desc := b.cat.Lookup(name)

	var out []Event
	if name == "html" || name == "head" || name == "body" {
		b.rootEnsured = true
	} else {
		out = append(out, b.ensureRoot(tok.Augmentation.Begin)...)
		out = append(out, b.ensureAncestor(desc, tok.Augmentation.Begin)...)
	}

	for {
		top := b.topFrame()
		if top == nil || !desc.CloseOnOpen[top.name] {
			break
		}
		f := b.pop()
		out = append(out, b.endEvent(f, true, tok.Augmentation.Begin))
	}

	if desc.Singleton && b.seenSingleton[name] {
		if b.listener != nil {
			b.listener.IgnoredStartElement(name, tok.Augmentation.Begin)
		}
		return out
	}
	if desc.Singleton {
		b.seenSingleton[name] = true
	}

	b.stack = append(b.stack, frame{name: name, desc: desc})
	out = append(out, Event{
		Type:         EventStartElement,
		Name:         name,
		Attrs:        tok.Attrs,
		Augmentation: tok.Augmentation,
	})

	if desc.Category == element.Empty || tok.Closed {
		f := b.pop()
		out = append(out, b.endEvent(f, !tok.Closed, tok.Augmentation.End))
	}

	return out
}

func (b *Balancer) endElement(tok scan.Token) []Event {
	name := strings.ToLower(tok.Name.Local)

	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].name == name {
			idx = i
			break
		}
		if b.stack[i].desc.CloseBounds[name] {
			break
		}
	}

	if idx == -1 {
		if b.listener != nil {
			b.listener.IgnoredEndElement(name, tok.Augmentation.Begin)
		}
		return nil
	}

	var out []Event
	for len(b.stack)-1 > idx {
		f := b.pop()
		out = append(out, b.endEvent(f, true, tok.Augmentation.Begin))
	}
	f := b.pop()
	out = append(out, b.endEvent(f, false, tok.Augmentation.End))
	return out
}

// finish pops every remaining open element at end of input (spec §4.F.2
// "end-of-input LIFO pop") and emits the terminal EndDocument event.
func (b *Balancer) finish(tok scan.Token) []Event {
	var out []Event
	for len(b.stack) > 0 {
		f := b.pop()
		out = append(out, b.endEvent(f, true, tok.Augmentation.Begin))
	}
	out = append(out, Event{Type: EventEndDocument, Augmentation: tok.Augmentation})
	return out
}

func (b *Balancer) endEvent(f frame, synthesized bool, at scan.Position) Event {
	return Event{
		Type:         EventEndElement,
		Name:         f.name,
		Synthesized:  synthesized,
		Augmentation: scan.Augmentation{Begin: at, End: at, Synthesized: synthesized},
	}
}

func (b *Balancer) topFrame() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return &b.stack[len(b.stack)-1]
}

func (b *Balancer) pop() frame {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f
}
