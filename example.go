package label

// Annotation is a labeled half-open span [Start, End) of example text.
// Offsets are Unicode code point indices.
type Annotation struct {
	Start int
	End   int
	Label string
}

// overlaps reports whether the two spans share at least one code point.
// A span ending exactly where another begins does not overlap it, but a
// span ending exactly at another's end does.
func (a Annotation) overlaps(b Annotation) bool {
	return (a.Start >= b.Start && a.Start < b.End) ||
		(a.End > b.Start && a.End <= b.End)
}

// Example is one unit of text plus its current annotation set.
// Annotations are in insertion order: pre-existing spans first, then spans
// added by Annotate in rule and match order.
type Example struct {
	Text        string
	Annotations []Annotation
}

// NewExample creates an example with an empty annotation set.
func NewExample(text string) *Example {
	return &Example{Text: text}
}
