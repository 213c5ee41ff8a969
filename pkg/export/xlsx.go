package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"milkreg/pkg/ledger"
)

// XLSX writes the one-row bill summary sheet plus a per-entry ledger below it.
func XLSX(b ledger.Bill, m Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{"Customer", "Month", "Total Liters", "Rate", "Extra Charges", "Total Amount", "Method"}
	values := []interface{}{m.Customer, m.Month, b.Quantity, b.Rate, b.Extra, b.Amount, string(b.Method)}
	for i, h := range headers {
		col := string(rune('A' + i))
		if err := f.SetCellValue(sheet, col+"1", h); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, col+"2", values[i]); err != nil {
			return nil, err
		}
	}

	row := 4
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "date")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "milk_ltr")
	for _, e := range b.Entries {
		row++
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Quantity)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
