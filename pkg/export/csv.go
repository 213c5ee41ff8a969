package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"milkreg/pkg/ledger"
)

// CSV writes one row per ledger entry plus the two summary rows the paper
// register format uses: TOTAL (litres) and GRAND TOTAL (amount).
func CSV(b ledger.Bill) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"date", "milk_ltr", "method"})
	for _, e := range b.Entries {
		_ = w.Write([]string{e.Label, formatLitres(e.Quantity), string(e.Method)})
	}
	_ = w.Write([]string{"TOTAL", formatLitres(b.Quantity), ""})
	_ = w.Write([]string{"GRAND TOTAL", strconv.FormatInt(b.Amount, 10), string(b.Method)})
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatLitres(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
