// Package balance implements the tag balancer described in spec §4.F: it
// consumes the low-level tokens from package scan and maintains the open-
// element stack, synthesizing missing start/end tags so that the resulting
// event stream is always a well-formed tree, the same responsibility the
// teacher's parser.go gives its push/pushAndEnter/exit stack of Nodes.
package balance

import "github.com/htmlscan/htmlscan/scan"

// EventType enumerates the tree-level events the Balancer produces. Unlike
// scan.TokenType, every StartElement is guaranteed to have a matching
// EndElement somewhere later in the stream, even if one or both were
// synthesized.
type EventType int

const (
	EventInvalid EventType = iota
	EventStartDocument
	EventDoctype
	EventStartElement
	EventEndElement
	EventCharacters
	EventComment
	EventProcessingInstruction
	EventStartCDATA
	EventCDATACharacters
	EventEndCDATA
	EventEndDocument
)

// String implements fmt.Stringer.
func (e EventType) String() string {
	switch e {
	case EventStartDocument:
		return "StartDocument"
	case EventDoctype:
		return "Doctype"
	case EventStartElement:
		return "StartElement"
	case EventEndElement:
		return "EndElement"
	case EventCharacters:
		return "Characters"
	case EventComment:
		return "Comment"
	case EventProcessingInstruction:
		return "ProcessingInstruction"
	case EventStartCDATA:
		return "StartCDATA"
	case EventCDATACharacters:
		return "CDATACharacters"
	case EventEndCDATA:
		return "EndCDATA"
	case EventEndDocument:
		return "EndDocument"
	default:
		return "Invalid"
	}
}

// Event is one node-tree-shaped production of the balancer.
type Event struct {
	Type EventType

	// Name is set for StartElement/EndElement.
	Name string

	// Attrs is set for StartElement. A synthesized StartElement always has
	// a nil/empty Attrs.
	Attrs []scan.Attr

	// Synthesized is true if the balancer generated this event itself
	// rather than passing through a token the scanner produced (spec §3
	// "Event record"; mirrors scan.Augmentation.Synthesized).
	Synthesized bool

	// Data holds Characters/CDATACharacters text, Comment text, or
	// ProcessingInstruction data.
	Data string

	// Target holds the ProcessingInstruction target name.
	Target string

	// Doctype is set for EventDoctype.
	Doctype *scan.Doctype

	Augmentation scan.Augmentation
}
