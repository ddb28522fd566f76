package htmlscan

import "fmt"

// Feature is one of the enumerated on/off switches from spec §6.4.
type Feature int

const (
	// FeatureAugmentations attaches line/column spans to every event.
	FeatureAugmentations Feature = iota

	// FeatureReportErrors passes the balancer's ignored start/end tag
	// notifications to a Handler that implements ErrorListener. Malformations
	// the scanner recovers from are not reported.
	FeatureReportErrors

	// FeatureBalanceTags runs the tag balancer; turning it off yields the
	// raw scanner token stream reinterpreted as unbalanced events.
	FeatureBalanceTags

	// FeatureFragmentMode seeds the balancer's element stack from
	// WithFragmentContextStack instead of starting empty.
	FeatureFragmentMode

	// FeatureInsertNamespaces runs the namespace binder.
	FeatureInsertNamespaces

	// FeatureInsertHTMLBody synthesizes html/head/body when missing.
	FeatureInsertHTMLBody

	// FeatureNotifyCharRefs makes the scanner emit Start/EndGeneralEntity
	// around each resolved character reference instead of folding it
	// silently into Characters. The balancer drops the bracketing, so a
	// Handler sees it only when FeatureBalanceTags is off.
	FeatureNotifyCharRefs

	// FeatureCDATASections emits CDATA as StartCDATA/Characters/EndCDATA
	// rather than folding it into ordinary Characters.
	FeatureCDATASections
)

// ElementCase controls case-folding of element names (spec §6.4
// "names/elems").
type ElementCase int

const (
	ElementCaseDefault ElementCase = iota // lowercase when balanced (the balancer folds names); as scanned otherwise
	ElementCaseUpper
	ElementCaseLower
	ElementCaseMatch // fold to match the static element catalog's canonical case
)

// AttrCase controls case-folding of attribute names (spec §6.4
// "names/attrs").
type AttrCase int

const (
	AttrCaseNoChange AttrCase = iota
	AttrCaseUpper
	AttrCaseLower
)

// ConfigError is raised synchronously from the Option that triggered it
// (spec §7 "Configuration"): an unknown feature. The property setters
// (WithElementCase, WithAttrCase, the encodings) accept any value.
type ConfigError struct {
	What string
}

// Error returns a human-readable error message.
func (c *ConfigError) Error() string {
	return fmt.Sprintf("htmlscan: configuration error: %s", c.What)
}

type options struct {
	features map[Feature]bool

	elementCase ElementCase
	attrCase    AttrCase

	defaultEncoding      string
	declaredEncoding     string
	fragmentContextStack []string

	err error
}

func defaultOptions() *options {
	return &options{
		features: map[Feature]bool{
			FeatureAugmentations:    false,
			FeatureReportErrors:     false,
			FeatureBalanceTags:      true,
			FeatureFragmentMode:     false,
			FeatureInsertNamespaces: false,
			FeatureInsertHTMLBody:   true,
			FeatureNotifyCharRefs:   false,
			FeatureCDATASections:    false,
		},
	}
}

// Option configures a Parser. Options are applied in order via New; the
// functional-options shape mirrors github.com/nussjustin/esi/esiproc's
// ProcessorOpt.
type Option func(*options)

// WithFeature turns the given Feature on or off.
func WithFeature(f Feature, enabled bool) Option {
	return func(o *options) {
		if f < FeatureAugmentations || f > FeatureCDATASections {
			o.err = &ConfigError{What: fmt.Sprintf("unknown feature %d", int(f))}
			return
		}
		o.features[f] = enabled
	}
}

// WithElementCase sets the element-name case-folding policy.
func WithElementCase(c ElementCase) Option {
	return func(o *options) { o.elementCase = c }
}

// WithAttrCase sets the attribute-name case-folding policy.
func WithAttrCase(c AttrCase) Option {
	return func(o *options) { o.attrCase = c }
}

// WithDefaultEncoding sets the fallback encoding used when none is
// detected via BOM sniffing and none is declared by the caller.
func WithDefaultEncoding(name string) Option {
	return func(o *options) { o.defaultEncoding = name }
}

// WithDeclaredEncoding tells the Parser the caller already knows the
// document's encoding (e.g. from a Content-Type header). BOM sniffing is
// then skipped entirely: a byte-order mark at the start of the input is
// neither consumed nor checked against the declared encoding.
func WithDeclaredEncoding(name string) Option {
	return func(o *options) { o.declaredEncoding = name }
}

// WithFragmentContextStack seeds the balancer's element stack with the
// given ancestor chain (outermost first) and implicitly enables
// FeatureFragmentMode, for parsing an HTML fragment as if it were found at
// that position in a full document (spec §4.F.1).
func WithFragmentContextStack(names ...string) Option {
	return func(o *options) {
		o.fragmentContextStack = append([]string(nil), names...)
		o.features[FeatureFragmentMode] = true
	}
}
