// Package htmlscan implements a permissive HTML tokenizer and tag balancer:
// a byte source is decoded, scanned into low-level tokens, and optionally
// rebalanced into a well-formed tree-shaped event stream and namespace-
// annotated, all driven by a single Parse call against a Handler sink.
//
// The package is organized the way the teacher splits esixml (scanning)
// from esi/esiproc (the tree walk and its processing), except here the
// scanner lives in package scan, the tree balancer in package balance, and
// the optional namespace pass in package namespace; this root package is
// only the facade that wires them together and owns the public Handler
// capability set.
package htmlscan

import (
	"io"
	"strings"
	"sync"

	"github.com/htmlscan/htmlscan/balance"
	"github.com/htmlscan/htmlscan/element"
	"github.com/htmlscan/htmlscan/namespace"
	"github.com/htmlscan/htmlscan/scan"
)

// Parser drives one HTML parse. It is not safe for concurrent use, but
// individual Parser values are cheap to pool (spec §5) via Get/Put.
type Parser struct {
	opts *options
}

var parserPool = sync.Pool{
	New: func() any { return &Parser{} },
}

// New builds a Parser from the given Options, applied in order. An error
// from any Option (a *ConfigError) is returned immediately; later Options
// are not applied.
func New(opts ...Option) (*Parser, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
		if o.err != nil {
			return nil, o.err
		}
	}
	return &Parser{opts: o}, nil
}

// Get returns a pooled Parser configured with opts, for callers that parse
// many documents and want to amortize allocation the way the teacher's
// getParser/putParser do for *esi.parser.
func Get(opts ...Option) (*Parser, error) {
	p, _ := parserPool.Get().(*Parser)
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
		if o.err != nil {
			parserPool.Put(p)
			return nil, o.err
		}
	}
	p.opts = o
	return p, nil
}

// Put returns p to the pool. p must not be used again afterwards.
func Put(p *Parser) {
	p.opts = nil
	parserPool.Put(p)
}

// Parse reads and tokenizes r, feeding the resulting events to h. It
// returns the first Fatal I/O or Unrecoverable-structure error encountered
// (spec §7); malformed markup never aborts the parse. Ignored start/end
// tags are reported through h when h implements ErrorListener and
// FeatureReportErrors is on; the scanner's recovered malformations are not
// reported.
func (p *Parser) Parse(r io.Reader, h Handler) error {
	sc, err := scan.New(r, p.opts.declaredEncoding, scan.Options{
		NotifyCharRefs:  p.opts.features[FeatureNotifyCharRefs],
		CDATASections:   p.opts.features[FeatureCDATASections],
		DefaultEncoding: p.opts.defaultEncoding,
	})
	if err != nil {
		return err
	}

	d := &dispatcher{opts: p.opts, h: h, cat: element.Default()}

	if !p.opts.features[FeatureBalanceTags] {
		return d.runScannerOnly(sc)
	}

	bal := balance.New()
	bal.SetInsertHTMLBody(p.opts.features[FeatureInsertHTMLBody])
	if errList, ok := h.(ErrorListener); ok && p.opts.features[FeatureReportErrors] {
		bal.SetListener(balanceListener{h: errList})
	}
	if p.opts.features[FeatureFragmentMode] {
		d.seedFragmentContext(bal, p.opts.fragmentContextStack)
	}

	var ns *namespace.Binder
	if p.opts.features[FeatureInsertNamespaces] {
		ns = namespace.New()
	}

	for {
		tok, err := sc.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if tok.Type == scan.TokenStartDocument {
			d.encoding = tok.Encoding
		}
		if tok.Type == scan.TokenStartTag {
			if metaErr := sc.ObserveMetaCharset(tok); metaErr != nil {
				return metaErr
			}
		}

		events, err := bal.Feed(tok)
		if err != nil {
			return err
		}
		for _, e := range events {
			if ns != nil {
				binding := ns.Bind(e)
				e.Augmentation.NamespaceURI = binding.URI
				e.Augmentation.NamespacePrefix = binding.Prefix
			}
			d.dispatchEvent(e)
		}
	}
}

// seedFragmentContext feeds synthetic start tags for the ancestor chain
// before any real input, the Go realization of spec §4.F.1's fragment
// context stack.
func (d *dispatcher) seedFragmentContext(bal *balance.Balancer, names []string) {
	for _, name := range names {
		_, _ = bal.Feed(scan.Token{Type: scan.TokenStartTag, Name: scan.Name{Local: name}})
	}
}

type dispatcher struct {
	opts *options
	h    Handler
	cat  *element.Catalog

	encoding string // from the scanner's StartDocument token
}

// foldElementName applies the configured ElementCase policy (spec §6.4
// "names/elems") to a tag name before it reaches the Handler.
func (d *dispatcher) foldElementName(name string) string {
	switch d.opts.elementCase {
	case ElementCaseUpper:
		return strings.ToUpper(name)
	case ElementCaseLower:
		return strings.ToLower(name)
	case ElementCaseMatch:
		if desc := d.cat.Lookup(name); desc.Code != -1 {
			return desc.Name
		}
		return strings.ToLower(name)
	default:
		return name
	}
}

// foldAttrName applies the configured AttrCase policy (spec §6.4
// "names/attrs") to an attribute name before it reaches the Handler.
func (d *dispatcher) foldAttrName(name string) string {
	switch d.opts.attrCase {
	case AttrCaseUpper:
		return strings.ToUpper(name)
	case AttrCaseLower:
		return strings.ToLower(name)
	default:
		return name
	}
}

// foldAttrs returns attrs with each Name.Local passed through
// foldAttrName, copying rather than mutating the scanner/balancer's own
// slice.
func (d *dispatcher) foldAttrs(attrs []scan.Attr) []scan.Attr {
	if d.opts.attrCase == AttrCaseNoChange || len(attrs) == 0 {
		return attrs
	}
	out := make([]scan.Attr, len(attrs))
	for i, a := range attrs {
		a.Name.Local = d.foldAttrName(a.Name.Local)
		out[i] = a
	}
	return out
}

func (d *dispatcher) runScannerOnly(sc *scan.Scanner) error {
	for {
		tok, err := sc.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		d.dispatchToken(tok)
	}
}

func (d *dispatcher) aug(a scan.Augmentation) scan.Augmentation {
	if d.opts.features[FeatureAugmentations] {
		return a
	}
	return scan.Augmentation{NamespaceURI: a.NamespaceURI, NamespacePrefix: a.NamespacePrefix}
}

func (d *dispatcher) dispatchToken(t scan.Token) {
	switch t.Type {
	case scan.TokenStartDocument:
		if sink, ok := d.h.(StartDocumentHandler); ok {
			sink.StartDocument(t.Encoding)
		}
	case scan.TokenDoctype:
		if sink, ok := d.h.(DoctypeHandler); ok {
			sink.DoctypeDecl(*t.Doctype, d.aug(t.Augmentation))
		}
	case scan.TokenStartTag:
		name := d.foldElementName(t.Name.Local)
		attrs := d.foldAttrs(t.Attrs)
		if t.Closed {
			if sink, ok := d.h.(EmptyElementHandler); ok {
				sink.EmptyElement(name, attrs, d.aug(t.Augmentation))
				return
			}
		}
		if sink, ok := d.h.(StartElementHandler); ok {
			sink.StartElement(name, attrs, d.aug(t.Augmentation))
		}
		if t.Closed {
			if sink, ok := d.h.(EndElementHandler); ok {
				sink.EndElement(name, true, d.aug(t.Augmentation))
			}
		}
	case scan.TokenEndTag:
		if sink, ok := d.h.(EndElementHandler); ok {
			sink.EndElement(d.foldElementName(t.Name.Local), false, d.aug(t.Augmentation))
		}
	case scan.TokenCharacters:
		d.dispatchCharacters(t.Data, d.aug(t.Augmentation))
	case scan.TokenComment:
		if sink, ok := d.h.(CommentHandler); ok {
			sink.Comment(t.Data, d.aug(t.Augmentation))
		}
	case scan.TokenProcessingInstruction:
		if sink, ok := d.h.(ProcessingInstructionHandler); ok {
			sink.ProcessingInstruction(t.Target, t.Data, d.aug(t.Augmentation))
		}
	case scan.TokenStartCDATA:
		if sink, ok := d.h.(StartCDATAHandler); ok {
			sink.StartCDATA(d.aug(t.Augmentation))
		}
	case scan.TokenCDATACharacters:
		d.dispatchCharacters(t.Data, d.aug(t.Augmentation))
	case scan.TokenEndCDATA:
		if sink, ok := d.h.(EndCDATAHandler); ok {
			sink.EndCDATA(d.aug(t.Augmentation))
		}
	case scan.TokenStartGeneralEntity:
		if sink, ok := d.h.(StartGeneralEntityHandler); ok {
			sink.StartGeneralEntity(d.aug(t.Augmentation))
		}
	case scan.TokenEndGeneralEntity:
		if sink, ok := d.h.(EndGeneralEntityHandler); ok {
			sink.EndGeneralEntity(d.aug(t.Augmentation))
		}
	case scan.TokenEndDocument:
		if sink, ok := d.h.(EndDocumentHandler); ok {
			sink.EndDocument()
		}
	}
}

func (d *dispatcher) dispatchEvent(e balance.Event) {
	aug := d.aug(e.Augmentation)
	switch e.Type {
	case balance.EventStartDocument:
		if sink, ok := d.h.(StartDocumentHandler); ok {
			sink.StartDocument(d.encoding)
		}
	case balance.EventDoctype:
		if sink, ok := d.h.(DoctypeHandler); ok {
			sink.DoctypeDecl(*e.Doctype, aug)
		}
	case balance.EventStartElement:
		if sink, ok := d.h.(StartElementHandler); ok {
			sink.StartElement(d.foldElementName(e.Name), d.foldAttrs(e.Attrs), aug)
		}
	case balance.EventEndElement:
		if sink, ok := d.h.(EndElementHandler); ok {
			sink.EndElement(d.foldElementName(e.Name), e.Synthesized, aug)
		}
	case balance.EventCharacters:
		d.dispatchCharacters(e.Data, aug)
	case balance.EventComment:
		if sink, ok := d.h.(CommentHandler); ok {
			sink.Comment(e.Data, aug)
		}
	case balance.EventProcessingInstruction:
		if sink, ok := d.h.(ProcessingInstructionHandler); ok {
			sink.ProcessingInstruction(e.Target, e.Data, aug)
		}
	case balance.EventStartCDATA:
		if sink, ok := d.h.(StartCDATAHandler); ok {
			sink.StartCDATA(aug)
		}
	case balance.EventCDATACharacters:
		d.dispatchCharacters(e.Data, aug)
	case balance.EventEndCDATA:
		if sink, ok := d.h.(EndCDATAHandler); ok {
			sink.EndCDATA(aug)
		}
	case balance.EventEndDocument:
		if sink, ok := d.h.(EndDocumentHandler); ok {
			sink.EndDocument()
		}
	}
}

func (d *dispatcher) dispatchCharacters(data string, aug scan.Augmentation) {
	if strings.TrimSpace(data) == "" {
		if sink, ok := d.h.(IgnorableWhitespaceHandler); ok {
			sink.IgnorableWhitespace(data, aug)
			return
		}
	}
	if sink, ok := d.h.(CharactersHandler); ok {
		sink.Characters(data, aug)
	}
}

type balanceListener struct {
	h ErrorListener
}

func (l balanceListener) IgnoredStartElement(name string, at scan.Position) {
	l.h.Warning("ignored-start-element", name, at)
}

func (l balanceListener) IgnoredEndElement(name string, at scan.Position) {
	l.h.Warning("ignored-end-element", name, at)
}
