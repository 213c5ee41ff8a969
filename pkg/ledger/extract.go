package ledger

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// The vendor's own arithmetic: "39 x 70 = 2730". Any of ×/x/X/* works as
	// the multiplication glyph.
	explicitTotalRE = regexp.MustCompile(`(\d{1,4})\s*[×xX*]\s*(\d{1,5})\s*=\s*(\d{1,7})`)
	extraChargeRE   = regexp.MustCompile(`\+\s*(\d{1,7})`)

	dateLabelRE = regexp.MustCompile(`^\s*(\d{1,2}[/-]\d{1,2})`)
	tokenRE     = regexp.MustCompile(`[0-9a-zA-Z]+`)

	// "2 ltr" / "2 L" split across tokens re-joins before tokenization so the
	// count and its unit stay one candidate.
	litreJoinRE = regexp.MustCompile(`(?i)\b(\d+)\s+(ltr|l)\b`)

	// A glyph only counts as multiplication when it sits between digits;
	// stray mark noise like "x1x" is not arithmetic.
	multiplyCtxRE = regexp.MustCompile(`\d\s*[×xX*]\s*\d`)
)

// ExplicitTotal is the vendor's own total line, taken as ground truth for the
// bill when present. Amount already includes Extra.
type ExplicitTotal struct {
	Litres int64  `json:"liters"`
	Rate   int64  `json:"rate"`
	Extra  int64  `json:"extra"`
	Amount int64  `json:"amount"`
	Raw    string `json:"raw"`
}

// FindExplicitTotal returns the first explicit-total match in document order,
// or nil. A trailing "+ <extra>" addend anywhere in the text is folded into
// the amount, matching how vendors append surcharges under the total.
func FindExplicitTotal(text string) *ExplicitTotal {
	m := explicitTotalRE.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	litres, _ := strconv.ParseInt(m[1], 10, 64)
	rate, _ := strconv.ParseInt(m[2], 10, 64)
	amount, _ := strconv.ParseInt(m[3], 10, 64)
	et := &ExplicitTotal{Litres: litres, Rate: rate, Amount: amount, Raw: m[0]}
	if em := extraChargeRE.FindStringSubmatch(text); em != nil {
		et.Extra, _ = strconv.ParseInt(em[1], 10, 64)
		et.Amount += et.Extra
	}
	return et
}

// Line is one candidate register row after extraction.
type Line struct {
	Index      int    // 1-based position in the document
	Label      string // date label when readable, else the index
	Raw        string
	Rest       string // row content after the date label
	Tokens     []string
	Arithmetic bool // contains '=' or a multiplication in context; skipped for marks
}

// ExtractLines splits normalized OCR text into candidate rows and candidate
// tokens within each row. Arithmetic lines keep no tokens so the vendor's own
// total is never re-read as a delivery mark.
func ExtractLines(text string) []Line {
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []Line
	idx := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx++
		ln := Line{Index: idx, Label: strconv.Itoa(idx), Raw: line}
		if strings.ContainsRune(line, '=') || multiplyCtxRE.MatchString(line) {
			ln.Arithmetic = true
			out = append(out, ln)
			continue
		}
		rest := line
		if m := dateLabelRE.FindStringSubmatch(line); m != nil {
			ln.Label = m[1]
			rest = line[len(m[0]):]
		}
		ln.Rest = strings.TrimSpace(rest)
		ln.Tokens = tokenRE.FindAllString(litreJoinRE.ReplaceAllString(rest, "$1$2"), -1)
		out = append(out, ln)
	}
	return out
}
