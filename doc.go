// Package label annotates spans of text using a dictionary of patterns.
//
// # Quick Start
//
//	rules, err := dictionary.ParseFile("dictionary.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := label.New(rules)
//	ex := label.NewExample("Book a flight to Paris tomorrow")
//	l.Annotate(ex)
//	for _, a := range ex.Annotations {
//	    fmt.Printf("[%d,%d) %s\n", a.Start, a.End, a.Label)
//	}
//
// # Matching Modes
//
// Each rule carries one of three modes: exact (the pattern anchored on both
// sides by Unicode word boundaries, case-sensitive), ignore-case (unanchored,
// case-folded), or regex (the pattern verbatim, case-sensitive). Rules apply
// in dictionary order; a candidate span is kept only if it overlaps no
// annotation already present, so earlier rules and earlier matches win.
//
// # Offsets
//
// All offsets are Unicode code point indices into the example text, as
// half-open [Start, End) intervals. They are not byte offsets.
//
// # Thread Safety
//
// Labeler is safe for concurrent use across examples. A single Example must
// not be annotated from multiple goroutines.
package label
