package ledger

// Method tags how an entry's quantity was derived.
type Method string

const (
	MethodVocabulary    Method = "vocabulary_match"
	MethodExplicitTotal Method = "explicit_total"
	MethodHeuristic     Method = "heuristic_count"
)

// Entry is one resolved delivery record. Label is the date substring found on
// the register row when one was readable, else the 1-based row index.
type Entry struct {
	Label    string  `json:"date"`
	Quantity float64 `json:"milk_ltr"`
	Method   Method  `json:"method"`
	Token    string  `json:"token,omitempty"` // raw spelling the quantity came from
}

// Ledger is the ordered, append-only sequence of resolved entries for one
// document plus a running sum. The sum is updated only by Append so it always
// equals the sum of the entries.
type Ledger struct {
	entries []Entry
	total   float64
}

func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
	l.total += e.Quantity
}

func (l *Ledger) Entries() []Entry { return l.entries }

func (l *Ledger) Len() int { return len(l.entries) }

// Total returns the running sum of quantities in litres.
func (l *Ledger) Total() float64 { return l.total }
