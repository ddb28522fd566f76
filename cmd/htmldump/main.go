// Command htmldump is a minimal example consumer of package htmlscan: it
// parses an HTML document from a file argument or stdin and prints one line
// per event, the way a teacher-pack demo walks a parsed document instead of
// asserting on it silently.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/htmlscan/htmlscan"
)

func main() {
	var (
		augment   = flag.Bool("augment", false, "attach line/column positions to events")
		reportErr = flag.Bool("warn", false, "report ignored start and end tags")
		noBalance = flag.Bool("no-balance", false, "disable tag balancing; dump the raw token stream")
		encoding  = flag.String("encoding", "", "declared encoding, if known (skips BOM sniffing)")
	)
	flag.Parse()

	r, err := inputReader(flag.Args())
	if err != nil {
		die(err)
	}

	var opts []htmlscan.Option
	opts = append(opts, htmlscan.WithFeature(htmlscan.FeatureAugmentations, *augment))
	opts = append(opts, htmlscan.WithFeature(htmlscan.FeatureReportErrors, *reportErr))
	if *noBalance {
		opts = append(opts, htmlscan.WithFeature(htmlscan.FeatureBalanceTags, false))
	}
	if *encoding != "" {
		opts = append(opts, htmlscan.WithDeclaredEncoding(*encoding))
	}

	p, err := htmlscan.New(opts...)
	if err != nil {
		die(err)
	}

	sink := &dumper{w: os.Stdout}
	if err := p.Parse(r, sink); err != nil {
		die(err)
	}
}

// inputReader resolves the input source: the first non-flag argument as a
// file path, falling back to stdin when it is piped.
func inputReader(args []string) (io.Reader, error) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		return os.Stdin, nil
	}

	return nil, fmt.Errorf("no input provided (pipe or file argument)")
}

func die(err error) {
	fmt.Fprintln(os.Stderr, "htmldump:", err)
	os.Exit(1)
}

// dumper implements htmlscan.Handler plus the document, doctype, element,
// text, comment, processing-instruction and warning interfaces, printing
// one line per event to w.
type dumper struct {
	htmlscan.BaseHandler
	w     io.Writer
	depth int
}

func (d *dumper) indent() string { return strings.Repeat("  ", d.depth) }

func (d *dumper) StartDocument(encoding string) {
	fmt.Fprintf(d.w, "StartDocument encoding=%s\n", encoding)
}

func (d *dumper) DoctypeDecl(doctype htmlscan.Doctype, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "Doctype name=%q\n", doctype.Name)
}

func (d *dumper) StartElement(name string, attrs []htmlscan.Attr, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "%s<%s%s>\n", d.indent(), name, formatAttrs(attrs))
	d.depth++
}

func (d *dumper) EmptyElement(name string, attrs []htmlscan.Attr, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "%s<%s%s/>\n", d.indent(), name, formatAttrs(attrs))
}

func (d *dumper) EndElement(name string, synthesized bool, aug htmlscan.Augmentation) {
	d.depth--
	if d.depth < 0 {
		d.depth = 0
	}
	mark := ""
	if synthesized {
		mark = " (synthesized)"
	}
	fmt.Fprintf(d.w, "%s</%s>%s\n", d.indent(), name, mark)
}

func (d *dumper) Characters(data string, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "%s#text %q\n", d.indent(), data)
}

func (d *dumper) Comment(data string, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "%s<!--%s-->\n", d.indent(), data)
}

func (d *dumper) ProcessingInstruction(target, data string, aug htmlscan.Augmentation) {
	fmt.Fprintf(d.w, "%s<?%s %s?>\n", d.indent(), target, data)
}

func (d *dumper) Warning(key string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: %s %v\n", key, args)
}

func (d *dumper) EndDocument() {
	fmt.Fprintln(d.w, "EndDocument")
}

func formatAttrs(attrs []htmlscan.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=%q", a.Name.Local, a.Value)
	}
	return b.String()
}
