package normalize

// replacements holds characters that PDF text layers commonly produce and that
// downstream consumers choke on. Substitutes are ASCII or Latin-1.
var replacements = map[rune]string{
	'\uf084': " ",      // private use
	'\u02da': "\u00b0", // ring above, used as a degree sign
	'\uf0b0': "\u00b0", // private use, degree-like glyph
	'\u2019': "'",      // right single quotation mark
	'\u201c': "\"",     // left double quotation mark
	'\u201d': "\"",     // right double quotation mark
	'\u2013': "-",      // en dash
	'\u2014': "-",      // em dash
	'\u00a0': " ",      // no-break space
}

// Replacement returns the fixed substitute for r, if r is in the table.
func Replacement(r rune) (string, bool) {
	s, ok := replacements[r]
	return s, ok
}

// Replacements returns a copy of the replacement table.
func Replacements() map[rune]string {
	out := make(map[rune]string, len(replacements))
	for k, v := range replacements {
		out[k] = v
	}
	return out
}
