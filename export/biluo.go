package export

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	label "github.com/jamesainslie/go-label"
	"github.com/jamesainslie/go-label/corpus"
)

// Token is one unit of tokenized text with code point offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

// BILUO writes token/tag pairs using Begin-Inside-Last-Unit-Outside tags,
// one "token<TAB>tag" line per token with a blank line between records.
//
// Tokenize is injectable; nil falls back to Unicode whitespace splitting, so
// the exporter works without any external tokenizer. Annotations that do not
// align with token boundaries tag the tokens they touch as "-".
type BILUO struct {
	Tokenize func(string) []Token
	// SkipBlank drops records with no annotations.
	SkipBlank bool
}

// Export implements Exporter.
func (e *BILUO) Export(w io.Writer, recs []corpus.Record) error {
	tokenize := e.Tokenize
	if tokenize == nil {
		tokenize = WhitespaceTokens
	}

	bw := bufio.NewWriter(w)
	first := true
	for _, rec := range recs {
		ex := rec.Example()
		if e.SkipBlank && len(ex.Annotations) == 0 {
			continue
		}
		if !first {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("writing biluo: %w", err)
			}
		}
		first = false

		tokens := tokenize(ex.Text)
		tags := biluoTags(tokens, ex.Annotations)
		for i, tok := range tokens {
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", tok.Text, tags[i]); err != nil {
				return fmt.Errorf("writing biluo: %w", err)
			}
		}
	}
	return bw.Flush()
}

// biluoTags assigns one tag per token. Tokens outside every annotation are
// "O"; a single-token annotation is "U-LABEL"; multi-token annotations are
// "B-", "I-"..., "L-". Tokens touched by a misaligned annotation are "-".
func biluoTags(tokens []Token, anns []label.Annotation) []string {
	tags := make([]string, len(tokens))
	for i := range tags {
		tags[i] = "O"
	}

	for _, a := range anns {
		first, last := -1, -1
		aligned := true
		for i, t := range tokens {
			if t.End <= a.Start || t.Start >= a.End {
				continue
			}
			if t.Start < a.Start || t.End > a.End {
				aligned = false
			}
			if first == -1 {
				first = i
			}
			last = i
		}
		if first == -1 {
			continue
		}
		if !aligned || tokens[first].Start != a.Start || tokens[last].End != a.End {
			for i := first; i <= last; i++ {
				tags[i] = "-"
			}
			continue
		}
		if first == last {
			tags[first] = "U-" + a.Label
			continue
		}
		tags[first] = "B-" + a.Label
		for i := first + 1; i < last; i++ {
			tags[i] = "I-" + a.Label
		}
		tags[last] = "L-" + a.Label
	}
	return tags
}

// WhitespaceTokens splits text on Unicode whitespace, reporting code point
// offsets. It is the default Tokenize for BILUO.
func WhitespaceTokens(text string) []Token {
	runes := []rune(text)
	var toks []Token
	start := -1
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && !unicode.IsSpace(runes[i]) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			toks = append(toks, Token{Text: string(runes[start:i]), Start: start, End: i})
			start = -1
		}
	}
	return toks
}
