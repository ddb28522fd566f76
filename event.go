package htmlscan

import "github.com/htmlscan/htmlscan/scan"

// Position and Augmentation are re-exported from package scan so that
// consumers of the public API never need to import it directly, the same
// way the teacher aliases esixml.Position as Position at the root of the
// module.
type (
	Position     = scan.Position
	Augmentation = scan.Augmentation
	Doctype      = scan.Doctype
)

// Attr is one parsed attribute, re-exported from package scan.
type Attr = scan.Attr
