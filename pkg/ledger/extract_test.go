package ledger

import "testing"

func TestFindExplicitTotal(t *testing.T) {
	et := FindExplicitTotal("some noise\n39 x 70 = 2730\nmore")
	if et == nil {
		t.Fatalf("expected a match")
	}
	if et.Litres != 39 || et.Rate != 70 || et.Amount != 2730 || et.Extra != 0 {
		t.Fatalf("unexpected parse: %+v", et)
	}
}

func TestFindExplicitTotalGlyphsAndExtra(t *testing.T) {
	for _, txt := range []string{"39 × 70 = 2730", "39X70=2730", "39 * 70 = 2730"} {
		if et := FindExplicitTotal(txt); et == nil || et.Amount != 2730 {
			t.Fatalf("glyph variant %q not matched: %+v", txt, et)
		}
	}
	et := FindExplicitTotal("39 x 70 = 2730\n+ 150")
	if et == nil || et.Extra != 150 || et.Amount != 2880 {
		t.Fatalf("expected extra folded into amount, got %+v", et)
	}
}

func TestFindExplicitTotalFirstMatchWins(t *testing.T) {
	et := FindExplicitTotal("10 x 70 = 700\n20 x 70 = 1400")
	if et == nil || et.Litres != 10 {
		t.Fatalf("expected first match in document order, got %+v", et)
	}
}

func TestExtractLinesDateLabel(t *testing.T) {
	lines := ExtractLines("01/08 9\n\n9 911")
	if len(lines) != 2 {
		t.Fatalf("expected 2 non-empty lines, got %d", len(lines))
	}
	if lines[0].Label != "01/08" {
		t.Fatalf("expected date label 01/08, got %q", lines[0].Label)
	}
	if len(lines[0].Tokens) != 1 || lines[0].Tokens[0] != "9" {
		t.Fatalf("date must not leak into tokens: %v", lines[0].Tokens)
	}
	if lines[1].Label != "2" {
		t.Fatalf("expected sequential index label, got %q", lines[1].Label)
	}
	if len(lines[1].Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %v", lines[1].Tokens)
	}
}

func TestExtractLinesArithmetic(t *testing.T) {
	lines := ExtractLines("39 x 70 = 2730\nx1x\nTotal = 39")
	if !lines[0].Arithmetic || len(lines[0].Tokens) != 0 {
		t.Fatalf("total line must be arithmetic with no tokens: %+v", lines[0])
	}
	if lines[1].Arithmetic {
		t.Fatalf("x without digits on both sides is mark noise, not arithmetic")
	}
	if !lines[2].Arithmetic {
		t.Fatalf("'=' always marks an arithmetic line")
	}
}

func TestExtractLinesLitreSuffixJoins(t *testing.T) {
	lines := ExtractLines("05/08 2 ltr")
	if len(lines) != 1 || len(lines[0].Tokens) != 1 || lines[0].Tokens[0] != "2ltr" {
		t.Fatalf("expected joined litre token, got %+v", lines[0].Tokens)
	}
}
