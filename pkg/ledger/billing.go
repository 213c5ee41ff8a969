package ledger

import "math"

// BillingInput carries the caller-supplied billing parameters. Override, when
// set, replaces the detected quantity at billing time only; the underlying
// ledger entries are left untouched so provenance survives the correction.
type BillingInput struct {
	RatePerLitre int64    `json:"rate"`
	ExtraCharges int64    `json:"extra_charges"`
	Override     *float64 `json:"override_liters,omitempty"`
}

// Bill is the derived, read-only billing result for one document. Recomputing
// it from the same text and inputs always yields the same value.
//
// All three quantity pathways are exposed so a caller can show where Amount
// came from: Override (manual correction), Explicit (the vendor's own total
// line) and Detected (the ledger's running sum).
type Bill struct {
	Entries  []Entry `json:"entries"`
	Quantity float64 `json:"total_liters"`
	Rate     int64   `json:"rate"`
	Extra    int64   `json:"extra_charges"`
	Amount   int64   `json:"total_amount"`
	Method   Method  `json:"method,omitempty"`

	Detected float64        `json:"detected_liters"`
	Explicit *ExplicitTotal `json:"explicit_total,omitempty"`
	Override *float64       `json:"override_liters,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`

	// Recognized is false when nothing at all was recovered from the text.
	// That is a reportable terminal state (retry with a clearer photo or
	// enter quantities manually), never an error.
	Recognized bool `json:"recognized"`
}

// BuildReport converts raw OCR text and billing inputs into a Bill. Empty or
// garbage text yields an empty, unrecognized bill rather than a failure.
//
// Effective quantity precedence: manual override, else the vendor's explicit
// total, else the ledger sum. When the explicit total is active its stated
// amount is emitted as-is (vendor arithmetic is authoritative and may
// legitimately disagree with rate x quantity); the other two pathways compute
// amount = round(quantity x rate) + extra.
func BuildReport(text string, vocab Vocabulary, in BillingInput) Bill {
	doc := Parse(text, vocab)
	b := Bill{
		Entries:  doc.Ledger.Entries(),
		Rate:     in.RatePerLitre,
		Extra:    in.ExtraCharges,
		Method:   dominantMethod(doc),
		Detected: doc.Ledger.Total(),
		Explicit: doc.Explicit,
		Override: in.Override,
		Fallback: doc.Fallback,
	}
	b.Recognized = doc.Explicit != nil || doc.Ledger.Len() > 0

	switch {
	case in.Override != nil:
		b.Quantity = *in.Override
		b.Amount = computeAmount(b.Quantity, in.RatePerLitre, in.ExtraCharges)
	case doc.Explicit != nil:
		b.Quantity = float64(doc.Explicit.Litres)
		b.Rate = doc.Explicit.Rate
		b.Extra = doc.Explicit.Extra
		b.Amount = doc.Explicit.Amount
	default:
		b.Quantity = doc.Ledger.Total()
		b.Amount = computeAmount(b.Quantity, in.RatePerLitre, in.ExtraCharges)
	}
	return b
}

func computeAmount(litres float64, rate, extra int64) int64 {
	return int64(math.Round(litres*float64(rate))) + extra
}

// dominantMethod picks the summary tag: the explicit total wins outright,
// otherwise the majority method among resolved entries.
func dominantMethod(doc Document) Method {
	if doc.Explicit != nil {
		return MethodExplicitTotal
	}
	vocab, heur := 0, 0
	for _, e := range doc.Ledger.Entries() {
		if e.Method == MethodVocabulary {
			vocab++
		} else {
			heur++
		}
	}
	switch {
	case vocab == 0 && heur == 0:
		return ""
	case heur > vocab:
		return MethodHeuristic
	default:
		return MethodVocabulary
	}
}
