package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// An explicit litre count written next to a mark, e.g. "2ltr" or "2l" (after
// litreJoinRE re-joined the unit). Checked only after the vocabulary misses so
// misreads like "91l" still resolve as marks.
var litreCountRE = regexp.MustCompile(`^(\d+)(?:ltr|l)$`)

// Document is the result of one full extraction/resolution pass over the OCR
// text of a single register photo.
type Document struct {
	Ledger   Ledger
	Explicit *ExplicitTotal
	Fallback bool // last-resort digit count was used; discount accordingly
}

// Parse runs both extraction strategies over the full text and resolves every
// candidate token through the priority chain: vocabulary match, then explicit
// litre count, then dropped. Resolution never fails; OCR noise contributes
// nothing and the worst case is an empty ledger, which is a reportable state
// for the caller, not an error.
func Parse(text string, vocab Vocabulary) Document {
	doc := Document{Explicit: FindExplicitTotal(text)}
	lines := ExtractLines(text)
	for _, ln := range lines {
		if e, ok := resolveWholeRow(ln, vocab); ok {
			doc.Ledger.Append(e)
			continue
		}
		for _, tok := range ln.Tokens {
			if e, ok := resolveToken(ln.Label, tok, vocab); ok {
				doc.Ledger.Append(e)
			}
		}
	}
	if doc.Explicit == nil && doc.Ledger.Len() == 0 {
		if n := countStrayOnes(lines); n > 0 {
			doc.Fallback = true
			doc.Ledger.Append(Entry{
				Label:    "TOTAL (fallback)",
				Quantity: float64(n),
				Method:   MethodHeuristic,
				Token:    fmt.Sprintf("%d stray '1' digits", n),
			})
		}
	}
	return doc
}

// A mark split by OCR ("9 1 1") re-joins only when the whole row collapses to
// a known spelling; otherwise its tokens resolve independently.
func resolveWholeRow(ln Line, vocab Vocabulary) (Entry, bool) {
	if len(ln.Tokens) < 2 {
		return Entry{}, false
	}
	if q, ok := vocab[NormalizeToken(ln.Rest)]; ok {
		return Entry{Label: ln.Label, Quantity: q, Method: MethodVocabulary, Token: ln.Rest}, true
	}
	return Entry{}, false
}

func resolveToken(label, tok string, vocab Vocabulary) (Entry, bool) {
	norm := NormalizeToken(tok)
	if q, ok := vocab[norm]; ok {
		return Entry{Label: label, Quantity: q, Method: MethodVocabulary, Token: tok}, true
	}
	if m := litreCountRE.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Entry{Label: label, Quantity: n, Method: MethodHeuristic, Token: tok}, true
		}
	}
	return Entry{}, false
}

// countStrayOnes is the crudest estimate we have: the number of '1' digits on
// non-arithmetic lines, read as one litre each. Invoked only when no explicit
// total exists and nothing at all resolved, and clearly labeled so a human
// reviewer discounts it.
func countStrayOnes(lines []Line) int {
	n := 0
	for _, ln := range lines {
		if ln.Arithmetic {
			continue
		}
		n += strings.Count(ln.Raw, "1")
	}
	return n
}
