package ledger

import "testing"

func TestBuildReportExplicitTotalAuthoritative(t *testing.T) {
	text := "01/08 9\n02/08 911\n39 x 70 = 2730"
	b := BuildReport(text, DefaultVocabulary(), BillingInput{RatePerLitre: 80})
	if b.Method != MethodExplicitTotal {
		t.Fatalf("expected explicit_total method, got %q", b.Method)
	}
	if b.Amount != 2730 || b.Quantity != 39 || b.Rate != 70 {
		t.Fatalf("vendor arithmetic must be emitted as-is: %+v", b)
	}
	// per-mark extraction still ran for provenance
	if b.Detected != 2.5 || len(b.Entries) != 2 {
		t.Fatalf("ledger must still be built alongside the explicit total: %+v", b)
	}
}

func TestBuildReportExplicitTotalWithExtra(t *testing.T) {
	b := BuildReport("39 x 70 = 2730\n+ 150", DefaultVocabulary(), BillingInput{RatePerLitre: 70})
	if b.Amount != 2880 || b.Extra != 150 {
		t.Fatalf("parsed extra must be added to the stated amount: %+v", b)
	}
}

func TestBuildReportLedgerSum(t *testing.T) {
	text := "01/08 9\n02/08 911\n03/08 x\n04/08 9"
	b := BuildReport(text, DefaultVocabulary(), BillingInput{RatePerLitre: 70, ExtraCharges: 150})
	if b.Quantity != 3.5 {
		t.Fatalf("expected 3.5 litres, got %v", b.Quantity)
	}
	if b.Amount != 395 { // round(3.5*70) + 150
		t.Fatalf("expected 395, got %d", b.Amount)
	}
	if b.Method != MethodVocabulary || !b.Recognized {
		t.Fatalf("unexpected summary: %+v", b)
	}
}

func TestBuildReportManualOverride(t *testing.T) {
	text := "01/08 9\n02/08 911"
	qty := 40.0
	b := BuildReport(text, DefaultVocabulary(), BillingInput{RatePerLitre: 70, ExtraCharges: 150, Override: &qty})
	if b.Quantity != 40 || b.Amount != 40*70+150 {
		t.Fatalf("override must drive the amount: %+v", b)
	}
	// the correction is presentation-time only
	if b.Detected != 2.5 || len(b.Entries) != 2 {
		t.Fatalf("override must leave the ledger untouched: %+v", b)
	}
	if b.Override == nil || *b.Override != 40 {
		t.Fatalf("override must be inspectable on the bill")
	}
}

func TestBuildReportOverrideBeatsExplicitTotal(t *testing.T) {
	qty := 40.0
	b := BuildReport("39 x 70 = 2730", DefaultVocabulary(), BillingInput{RatePerLitre: 70, Override: &qty})
	if b.Amount != 2800 {
		t.Fatalf("manual override has highest precedence: %+v", b)
	}
	if b.Explicit == nil {
		t.Fatalf("explicit total must stay inspectable under an override")
	}
}

func TestBuildReportEmptyText(t *testing.T) {
	b := BuildReport("", DefaultVocabulary(), BillingInput{RatePerLitre: 70})
	if b.Recognized {
		t.Fatalf("empty text must report as unrecognized")
	}
	if b.Amount != 0 || len(b.Entries) != 0 || b.Method != "" {
		t.Fatalf("empty text must yield a zeroed bill: %+v", b)
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	text := "01/08 9\n02/08 9ii\nnoise\n03/08 x"
	in := BillingInput{RatePerLitre: 70, ExtraCharges: 150}
	a := BuildReport(text, DefaultVocabulary(), in)
	b := BuildReport(text, DefaultVocabulary(), in)
	if a.Amount != b.Amount || a.Quantity != b.Quantity || len(a.Entries) != len(b.Entries) {
		t.Fatalf("same input must yield the same bill: %+v vs %+v", a, b)
	}
}

func TestBuildReportFallbackLabeled(t *testing.T) {
	b := BuildReport("line1\nx1x\n", DefaultVocabulary(), BillingInput{RatePerLitre: 70})
	if !b.Fallback || b.Method != MethodHeuristic {
		t.Fatalf("fallback path must be clearly labeled: %+v", b)
	}
	if b.Quantity != 2 || b.Amount != 140 {
		t.Fatalf("expected 2 litres at rate 70: %+v", b)
	}
}
