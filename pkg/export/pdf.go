package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"milkreg/pkg/ledger"
)

// PDF renders the paginated bill: a fixed header block, the date/quantity
// body table, and the summary block with a resolution-method footnote. The
// core Helvetica fonts cannot encode the rupee sign, so amounts print as Rs.
func PDF(b ledger.Bill, m Meta) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, m.supplierLine(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Customer: "+orBlank(m.Customer), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Month: "+orBlank(m.Month), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Milk (Ltr)", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, e := range b.Entries {
		pdf.CellFormat(40, 6, e.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, formatLitres(e.Quantity), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.CellFormat(0, 6, fmt.Sprintf("Total Milk: %s litres", formatLitres(b.Quantity)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Rate: Rs %d per litre", b.Rate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Extras: Rs %d", b.Extra), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("GRAND TOTAL: Rs %d", b.Amount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.Ln(4)
	pdf.CellFormat(0, 5, "Extraction method: "+string(b.Method), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "NOTE: automated best-effort extraction. Verify against the register photo before collection.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orBlank(s string) string {
	if s == "" {
		return "___________"
	}
	return s
}
