package export

import (
	"bytes"
	"strings"
	"testing"

	"milkreg/pkg/ledger"
)

func sampleBill() ledger.Bill {
	return ledger.BuildReport(
		"01/08 9\n02/08 911\n03/08 x",
		ledger.DefaultVocabulary(),
		ledger.BillingInput{RatePerLitre: 70, ExtraCharges: 150},
	)
}

func TestCSVRows(t *testing.T) {
	data, err := CSV(sampleBill())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	out := string(data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header + 3 entries + TOTAL + GRAND TOTAL
	if len(lines) != 6 {
		t.Fatalf("expected 6 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "01/08,1,") {
		t.Fatalf("unexpected first entry row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "TOTAL,2.5") {
		t.Fatalf("unexpected TOTAL row: %q", lines[4])
	}
	if !strings.HasPrefix(lines[5], "GRAND TOTAL,325") { // round(2.5*70)+150
		t.Fatalf("unexpected GRAND TOTAL row: %q", lines[5])
	}
}

func TestPDFBytes(t *testing.T) {
	data, err := PDF(sampleBill(), Meta{Customer: "Sharma Ji", Month: "July 2025"})
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF header, got %q", data[:8])
	}
}

func TestXLSXBytes(t *testing.T) {
	data, err := XLSX(sampleBill(), Meta{Customer: "Sharma Ji", Month: "July 2025"})
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected a zip container, got %q", data[:4])
	}
}
