package element

import "testing"

func TestLookupKnownElementsCaseInsensitive(t *testing.T) {
	cat := Default()

	for _, name := range []string{"html", "HTML", "Html", "BODY", "li", "LI"} {
		d := cat.Lookup(name)
		if d.Code == -1 {
			t.Fatalf("Lookup(%q) returned unknown descriptor", name)
		}
	}
}

func TestLookupUnknownElement(t *testing.T) {
	cat := Default()
	d := cat.Lookup("x-widget")
	if d.Code != -1 {
		t.Fatalf("Lookup(unknown) Code = %d, want -1", d.Code)
	}
	if d.Category != Container {
		t.Fatalf("Lookup(unknown) Category = %v, want Container", d.Category)
	}
}

func TestSingletonsFlagged(t *testing.T) {
	cat := Default()
	for _, name := range []string{"html", "head", "body", "frameset"} {
		if !cat.Lookup(name).Singleton {
			t.Fatalf("%q should be flagged Singleton", name)
		}
	}
	if cat.Lookup("div").Singleton {
		t.Fatalf("div should not be Singleton")
	}
}

func TestLiClosesOnOpen(t *testing.T) {
	cat := Default()
	d := cat.Lookup("li")
	if !d.CloseOnOpen["li"] {
		t.Fatalf("li.CloseOnOpen should include li")
	}
	if !d.AllowedParents["ul"] || !d.AllowedParents["ol"] {
		t.Fatalf("li.AllowedParents should include ul and ol")
	}
}

func TestTrDoesNotAllowTableAsDirectParent(t *testing.T) {
	cat := Default()
	d := cat.Lookup("tr")
	if d.AllowedParents["table"] {
		t.Fatalf("tr.AllowedParents must not include table, else tbody synthesis could never fire")
	}
	if d.SynthesizeAncestor != "tbody" {
		t.Fatalf("tr.SynthesizeAncestor = %q, want %q", d.SynthesizeAncestor, "tbody")
	}
}

func TestDefaultCatalogIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("Default() should return the same process-wide catalog instance")
	}
}
