package htmlscan

// Handler is the marker interface a sink implements to receive parse
// events (spec §6.5). It carries no methods itself: a concrete sink opts
// into each event kind it cares about by additionally implementing the
// matching optional interface below, and the Parser dispatches to each via
// a type assertion, the same capability-set pattern the teacher's
// esiproc.Processor.processNode uses a type switch for, one case per
// concrete esi.Node type.
type Handler interface {
	sinkMarker()
}

// BaseHandler gives a concrete sink the required sinkMarker method for
// free; embed it instead of implementing sinkMarker directly.
type BaseHandler struct{}

func (BaseHandler) sinkMarker() {}

// StartDocumentHandler receives the encoding the Parser settled on.
type StartDocumentHandler interface {
	Handler
	StartDocument(encoding string)
}

// DoctypeHandler receives a parsed "<!DOCTYPE ...>" declaration.
type DoctypeHandler interface {
	Handler
	DoctypeDecl(d Doctype, aug Augmentation)
}

// StartElementHandler receives the opening tag of a non-empty element.
type StartElementHandler interface {
	Handler
	StartElement(name string, attrs []Attr, aug Augmentation)
}

// EmptyElementHandler receives a self-closing tag ("<br/>"), in place of a
// StartElement/EndElement pair, when the sink implements it; a sink that
// does not implement EmptyElementHandler still receives the equivalent
// StartElement+EndElement pair from StartElementHandler/EndElementHandler.
// EmptyElement is called only when FeatureBalanceTags is off; with
// balancing on, every element arrives as a StartElement/EndElement pair.
type EmptyElementHandler interface {
	Handler
	EmptyElement(name string, attrs []Attr, aug Augmentation)
}

// EndElementHandler receives a closing tag, real or synthesized.
type EndElementHandler interface {
	Handler
	EndElement(name string, synthesized bool, aug Augmentation)
}

// CharactersHandler receives ordinary text content.
type CharactersHandler interface {
	Handler
	Characters(data string, aug Augmentation)
}

// IgnorableWhitespaceHandler, if implemented, receives character data that
// is entirely whitespace instead of it going through CharactersHandler.
type IgnorableWhitespaceHandler interface {
	Handler
	IgnorableWhitespace(data string, aug Augmentation)
}

// CommentHandler receives comment text.
type CommentHandler interface {
	Handler
	Comment(data string, aug Augmentation)
}

// ProcessingInstructionHandler receives a processing instruction.
type ProcessingInstructionHandler interface {
	Handler
	ProcessingInstruction(target, data string, aug Augmentation)
}

// StartCDATAHandler/EndCDATAHandler bracket a CDATA section when
// FeatureCDATASections is enabled; CharactersHandler still receives the
// section's text in between.
type StartCDATAHandler interface {
	Handler
	StartCDATA(aug Augmentation)
}

type EndCDATAHandler interface {
	Handler
	EndCDATA(aug Augmentation)
}

// StartGeneralEntityHandler/EndGeneralEntityHandler bracket a resolved
// character reference when FeatureNotifyCharRefs is enabled. They are
// called only when FeatureBalanceTags is off: the balancer drops the
// bracketing and passes on just the reference's Characters.
type StartGeneralEntityHandler interface {
	Handler
	StartGeneralEntity(aug Augmentation)
}

type EndGeneralEntityHandler interface {
	Handler
	EndGeneralEntity(aug Augmentation)
}

// EndDocumentHandler receives the end-of-parse notification.
type EndDocumentHandler interface {
	Handler
	EndDocument()
}

// ErrorListener receives the balancer's "Ignored event" notifications from
// spec §7 ("ignored-start-element" for a duplicate singleton,
// "ignored-end-element" for an unmatched end tag) when FeatureReportErrors
// and FeatureBalanceTags are on. Malformations the scanner recovers from
// are not reported.
type ErrorListener interface {
	Handler
	Warning(key string, args ...any)
}
