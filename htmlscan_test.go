package htmlscan_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/htmlscan/htmlscan"
)

// recEvent is a flattened, comparable projection of one Handler callback,
// the same "record every callback into a comparable slice, then cmp.Diff
// against a literal table" shape the teacher uses to assert on a token
// stream.
type recEvent struct {
	Kind string
	Name string
	Text string
	Syn  bool
	NS   string
}

type recorder struct {
	htmlscan.BaseHandler
	events []recEvent
}

func (r *recorder) StartDocument(encoding string) {
	r.events = append(r.events, recEvent{Kind: "StartDocument"})
}

func (r *recorder) DoctypeDecl(d htmlscan.Doctype, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "Doctype", Name: d.Name})
}

func (r *recorder) StartElement(name string, attrs []htmlscan.Attr, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "StartElement", Name: name, NS: aug.NamespaceURI})
}

func (r *recorder) EmptyElement(name string, attrs []htmlscan.Attr, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "EmptyElement", Name: name})
}

func (r *recorder) EndElement(name string, synthesized bool, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "EndElement", Name: name, Syn: synthesized})
}

func (r *recorder) Characters(data string, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "Characters", Text: data})
}

func (r *recorder) Comment(data string, aug htmlscan.Augmentation) {
	r.events = append(r.events, recEvent{Kind: "Comment", Text: data})
}

func (r *recorder) EndDocument() {
	r.events = append(r.events, recEvent{Kind: "EndDocument"})
}

func parseAll(t *testing.T, input string, opts ...htmlscan.Option) []recEvent {
	t.Helper()
	p, err := htmlscan.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := &recorder{}
	if err := p.Parse(strings.NewReader(input), rec); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return rec.events
}

func TestParseBalancesBareContentIntoHTMLBody(t *testing.T) {
	got := parseAll(t, "hello")
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "StartElement", Name: "html"},
		{Kind: "StartElement", Name: "head"},
		{Kind: "EndElement", Name: "head", Syn: true},
		{Kind: "StartElement", Name: "body"},
		{Kind: "Characters", Text: "hello"},
		{Kind: "EndElement", Name: "body", Syn: true},
		{Kind: "EndElement", Name: "html", Syn: true},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDoctypeAndWellFormedDocument(t *testing.T) {
	got := parseAll(t, "<!DOCTYPE html><html><body><p>hi</p></body></html>")
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "Doctype", Name: "html"},
		{Kind: "StartElement", Name: "html"},
		{Kind: "StartElement", Name: "body"},
		{Kind: "StartElement", Name: "p"},
		{Kind: "Characters", Text: "hi"},
		{Kind: "EndElement", Name: "p", Syn: false},
		{Kind: "EndElement", Name: "body", Syn: false},
		{Kind: "EndElement", Name: "html", Syn: false},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLiClosesOnOpenThroughFullPipeline(t *testing.T) {
	got := parseAll(t, "<ul><li>a<li>b</ul>")
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "StartElement", Name: "html"},
		{Kind: "StartElement", Name: "head"},
		{Kind: "EndElement", Name: "head", Syn: true},
		{Kind: "StartElement", Name: "body"},
		{Kind: "StartElement", Name: "ul"},
		{Kind: "StartElement", Name: "li"},
		{Kind: "Characters", Text: "a"},
		{Kind: "EndElement", Name: "li", Syn: true},
		{Kind: "StartElement", Name: "li"},
		{Kind: "Characters", Text: "b"},
		{Kind: "EndElement", Name: "li", Syn: true},
		{Kind: "EndElement", Name: "ul", Syn: false},
		{Kind: "EndElement", Name: "body", Syn: true},
		{Kind: "EndElement", Name: "html", Syn: true},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutBalanceTagsYieldsRawTokens(t *testing.T) {
	got := parseAll(t, "<br/><p>x", htmlscan.WithFeature(htmlscan.FeatureBalanceTags, false))
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "EmptyElement", Name: "br"},
		{Kind: "StartElement", Name: "p"},
		{Kind: "Characters", Text: "x"},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEntityAndCommentRoundTrip(t *testing.T) {
	got := parseAll(t, "<p>a &amp; b<!--note--></p>")
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "StartElement", Name: "html"},
		{Kind: "StartElement", Name: "head"},
		{Kind: "EndElement", Name: "head", Syn: true},
		{Kind: "StartElement", Name: "body"},
		{Kind: "StartElement", Name: "p"},
		{Kind: "Characters", Text: "a & b"},
		{Kind: "Comment", Text: "note"},
		{Kind: "EndElement", Name: "p", Syn: false},
		{Kind: "EndElement", Name: "body", Syn: true},
		{Kind: "EndElement", Name: "html", Syn: true},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInsertHTMLBodyDisabledYieldsNoSynthesizedRoot(t *testing.T) {
	got := parseAll(t, "hello", htmlscan.WithFeature(htmlscan.FeatureInsertHTMLBody, false))
	want := []recEvent{
		{Kind: "StartDocument"},
		{Kind: "Characters", Text: "hello"},
		{Kind: "EndDocument"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseElementCaseUpperAndMatch(t *testing.T) {
	got := parseAll(t, "<DIV>x</DIV>", htmlscan.WithElementCase(htmlscan.ElementCaseUpper))
	var names []string
	for _, e := range got {
		if e.Kind == "StartElement" || e.Kind == "EndElement" {
			names = append(names, e.Name)
		}
	}
	want := []string{"HTML", "HEAD", "HEAD", "BODY", "DIV", "DIV", "BODY", "HTML"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	got = parseAll(t, "<DIV>x</DIV>", htmlscan.WithElementCase(htmlscan.ElementCaseMatch))
	names = nil
	for _, e := range got {
		if e.Kind == "StartElement" || e.Kind == "EndElement" {
			names = append(names, e.Name)
		}
	}
	want = []string{"html", "head", "head", "body", "div", "div", "body", "html"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAttrCaseLower(t *testing.T) {
	p, err := htmlscan.New(htmlscan.WithAttrCase(htmlscan.AttrCaseLower))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var gotAttrs []htmlscan.Attr
	rec := &attrRecorder{onStart: func(attrs []htmlscan.Attr) { gotAttrs = attrs }}
	if err := p.Parse(strings.NewReader(`<A HREF="x">`), rec); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(gotAttrs) != 1 || gotAttrs[0].Name.Local != "href" {
		t.Fatalf("attrs = %+v, want a single lower-cased %q attr", gotAttrs, "href")
	}
}

type attrRecorder struct {
	htmlscan.BaseHandler
	onStart func(attrs []htmlscan.Attr)
}

func (r *attrRecorder) StartElement(name string, attrs []htmlscan.Attr, aug htmlscan.Augmentation) {
	r.onStart(attrs)
}

func TestParseInsertNamespacesBindsForeignContent(t *testing.T) {
	got := parseAll(t, "<svg><rect/></svg><p>x</p>", htmlscan.WithFeature(htmlscan.FeatureInsertNamespaces, true))
	byName := map[string]string{}
	for _, e := range got {
		if e.Kind == "StartElement" || e.Kind == "EmptyElement" {
			byName[e.Name] = e.NS
		}
	}
	if byName["svg"] != "http://www.w3.org/2000/svg" {
		t.Fatalf("svg namespace = %q, want the SVG namespace URI", byName["svg"])
	}
	if byName["p"] != "http://www.w3.org/1999/xhtml" {
		t.Fatalf("p namespace = %q, want the XHTML namespace URI", byName["p"])
	}
}

func TestWithFeatureRejectsUnknownFeature(t *testing.T) {
	_, err := htmlscan.New(htmlscan.WithFeature(htmlscan.Feature(999), true))
	if err == nil {
		t.Fatal("expected a ConfigError for an unknown feature")
	}
	var cfgErr *htmlscan.ConfigError
	if !asConfigError(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}

func asConfigError(err error, target **htmlscan.ConfigError) bool {
	ce, ok := err.(*htmlscan.ConfigError)
	if ok {
		*target = ce
	}
	return ok
}
