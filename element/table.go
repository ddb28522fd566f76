package element

// buildCatalog constructs the static element model. The exact
// "allowed-parents"/"close-on-open" matrix is an Open Question in spec §9:
// the authoritative neko source this spec was distilled from was filtered
// out of the retrieval pack entirely (original_source/_INDEX.md: "0 files
// kept"), so this table is authored from the publicly documented HTML5
// tree-construction categories, in the same spirit as the stop-tag tables
// in golang.org/x/net/html's historical parser (retrieval pack
// other_examples/5dd71080_..._go-src-pkg-html-parse.go.go:
// defaultScopeStopTags, listItemScopeStopTags, tableScopeStopTags). This
// decision is recorded in DESIGN.md.
func buildCatalog() *Catalog {
	c := &catalog{buckets: make(map[int][]*Descriptor)}

	code := 0
	next := func() int {
		code++
		return code
	}

	set := func(names ...string) map[string]bool {
		m := make(map[string]bool, len(names))
		for _, n := range names {
			m[n] = true
		}
		return m
	}

	add := func(d *Descriptor) {
		d.Code = next()
		c.add(d)
	}

	// Singletons.
	add(&Descriptor{Name: "html", Category: Special, Singleton: true})
	add(&Descriptor{Name: "head", Category: Special, Singleton: true, AllowedParents: set("html")})
	add(&Descriptor{Name: "body", Category: Special, Singleton: true, AllowedParents: set("html")})
	add(&Descriptor{Name: "frameset", Category: Special, Singleton: true, AllowedParents: set("html")})

	// Document metadata, raw text.
	add(&Descriptor{Name: "title", Category: Container, AllowedParents: set("head")})
	add(&Descriptor{Name: "meta", Category: Empty, AllowedParents: set("head")})
	add(&Descriptor{Name: "link", Category: Empty, AllowedParents: set("head")})
	add(&Descriptor{Name: "base", Category: Empty, AllowedParents: set("head")})
	add(&Descriptor{Name: "style", Category: Special, RawText: true})
	add(&Descriptor{Name: "script", Category: Special, RawText: true})
	add(&Descriptor{Name: "textarea", Category: Special, RawText: true})
	add(&Descriptor{Name: "plaintext", Category: Special, Plaintext: true})

	// Sectioning / block.
	for _, name := range []string{"div", "p", "blockquote", "section", "article", "aside", "nav", "header", "footer", "main", "address", "figure", "figcaption"} {
		d := &Descriptor{Name: name, Category: Block, CloseBounds: set("body", "html")}
		if name == "p" {
			d.CloseOnOpen = set("p")
		}
		add(d)
	}
	for _, name := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		add(&Descriptor{Name: name, Category: Block, CloseBounds: set("body", "html"), CloseOnOpen: set("h1", "h2", "h3", "h4", "h5", "h6")})
	}

	// Lists.
	add(&Descriptor{Name: "ul", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "ol", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "menu", Category: Special, CloseBounds: set("body", "html")})
	// CloseBounds below stops at body/html rather than naming the element's
	// own structural parent (ul/dl/...), for the same reason as the table
	// elements below: the parent is a real reachable ancestor and must stay
	// reachable by its own explicit end tag.
	add(&Descriptor{Name: "li", Category: Block, AllowedParents: set("ul", "ol", "menu"), SynthesizeAncestor: "ul", CloseBounds: set("body", "html"), CloseOnOpen: set("li")})
	add(&Descriptor{Name: "dl", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "dt", Category: Block, AllowedParents: set("dl"), SynthesizeAncestor: "dl", CloseBounds: set("body", "html"), CloseOnOpen: set("dt", "dd")})
	add(&Descriptor{Name: "dd", Category: Block, AllowedParents: set("dl"), SynthesizeAncestor: "dl", CloseBounds: set("body", "html"), CloseOnOpen: set("dt", "dd")})

	// Tables. CloseBounds on every element below table is deliberately just
	// body/html, not an intermediate table-structure name: table, tbody,
	// tr, etc. are all real reachable ancestors within a well-formed table
	// and must stay reachable by their own explicit end tag (e.g. a </table>
	// while a tbody is open has to pop through the tbody implicitly rather
	// than being treated as unmatched, which is what naming "table" as one
	// of tbody's own CloseBounds would otherwise do).
	add(&Descriptor{Name: "table", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "caption", Category: Special, AllowedParents: set("table"), SynthesizeAncestor: "table", CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "colgroup", Category: Special, AllowedParents: set("table"), SynthesizeAncestor: "table", CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "col", Category: Empty, AllowedParents: set("colgroup"), SynthesizeAncestor: "colgroup"})
	add(&Descriptor{Name: "thead", Category: Special, AllowedParents: set("table"), SynthesizeAncestor: "table", CloseBounds: set("body", "html"), CloseOnOpen: set("thead", "tbody", "tfoot")})
	add(&Descriptor{Name: "tbody", Category: Special, AllowedParents: set("table"), SynthesizeAncestor: "table", CloseBounds: set("body", "html"), CloseOnOpen: set("thead", "tbody", "tfoot")})
	add(&Descriptor{Name: "tfoot", Category: Special, AllowedParents: set("table"), SynthesizeAncestor: "table", CloseBounds: set("body", "html"), CloseOnOpen: set("thead", "tbody", "tfoot")})
	// "table" is deliberately NOT in tr's AllowedParents: a <tr> opened
	// directly under <table> with no thead/tbody/tfoot open must still
	// fail the ancestry check so SynthesizeAncestor fires and inserts the
	// missing tbody (spec §4.F.2 step 2, Scenario S7).
	add(&Descriptor{Name: "tr", Category: Special, AllowedParents: set("thead", "tbody", "tfoot"), SynthesizeAncestor: "tbody", CloseBounds: set("body", "html"), CloseOnOpen: set("tr")})
	add(&Descriptor{Name: "td", Category: Container, AllowedParents: set("tr"), SynthesizeAncestor: "tr", CloseBounds: set("body", "html"), CloseOnOpen: set("td", "th")})
	add(&Descriptor{Name: "th", Category: Container, AllowedParents: set("tr"), SynthesizeAncestor: "tr", CloseBounds: set("body", "html"), CloseOnOpen: set("td", "th")})

	// Forms.
	add(&Descriptor{Name: "form", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "button", Category: Container, CloseBounds: set("body", "html", "form")})
	add(&Descriptor{Name: "select", Category: Special, CloseBounds: set("body", "html", "form")})
	add(&Descriptor{Name: "optgroup", Category: Container, AllowedParents: set("select"), SynthesizeAncestor: "select", CloseBounds: set("body", "html"), CloseOnOpen: set("optgroup", "option")})
	add(&Descriptor{Name: "option", Category: Container, AllowedParents: set("select", "optgroup"), SynthesizeAncestor: "select", CloseBounds: set("body", "html"), CloseOnOpen: set("option")})
	add(&Descriptor{Name: "label", Category: Inline})
	add(&Descriptor{Name: "fieldset", Category: Block, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "legend", Category: Container, AllowedParents: set("fieldset"), SynthesizeAncestor: "fieldset"})
	add(&Descriptor{Name: "input", Category: Empty})

	// Inline.
	for _, name := range []string{"a", "b", "i", "u", "s", "strong", "em", "small", "span", "sub", "sup", "code", "mark", "abbr", "cite", "q", "time", "wbr"} {
		cat := Inline
		if name == "wbr" {
			cat = Empty
		}
		add(&Descriptor{Name: name, Category: cat})
	}

	// Void / EMPTY elements.
	for _, name := range []string{"area", "br", "embed", "hr", "img", "param", "source", "track", "keygen", "command", "menuitem"} {
		add(&Descriptor{Name: name, Category: Empty})
	}

	// Embedded / foreign-content roots.
	add(&Descriptor{Name: "object", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "applet", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "marquee", Category: Special, CloseBounds: set("body", "html")})
	add(&Descriptor{Name: "svg", Category: Special})
	add(&Descriptor{Name: "math", Category: Special})

	return &Catalog{c: c}
}
