package source

import "strings"

// CanonicalName normalizes common encoding aliases to the canonical form
// used throughout this package and by Compatible's family table (spec §6.3).
func CanonicalName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return "UTF-8"
	case "us-ascii", "ascii", "ansi_x3.4-1968":
		return "US-ASCII"
	case "iso-8859-1", "latin1", "l1":
		return "ISO-8859-1"
	case "iso-8859-15":
		return "ISO-8859-15"
	case "windows-1252", "cp1252", "x-cp1252":
		return "Windows-1252"
	case "utf-16":
		return "UTF-16"
	case "utf-16le":
		return "UTF-16LE"
	case "utf-16be":
		return "UTF-16BE"
	default:
		return name
	}
}

// family classifies a canonical encoding name into the compatibility
// families from spec §6.3: ASCII supersets interchange freely with each
// other without requiring a re-decode; the three UTF-16 variants form their
// own family.
func family(canonical string) string {
	switch canonical {
	case "US-ASCII", "UTF-8", "ISO-8859-1", "ISO-8859-15", "Windows-1252":
		return "ascii-superset"
	case "UTF-16", "UTF-16LE", "UTF-16BE":
		return "utf-16"
	default:
		if strings.HasPrefix(canonical, "ISO-8859-") || strings.HasPrefix(canonical, "Windows-125") {
			return "ascii-superset"
		}
		return "other:" + canonical
	}
}

// Compatible reports whether switching from encoding a to encoding b
// requires a re-decode (false) or can continue in place (true), per the
// symmetric family table in spec §6.3. A change within a family does not
// trigger replay; a change across families does.
func Compatible(a, b string) bool {
	return family(CanonicalName(a)) == family(CanonicalName(b))
}
