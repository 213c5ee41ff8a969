package main

import (
	"fmt"
	"os"

	"milkreg/pkg/ledger"
	"milkreg/pkg/ocr"
)

// One-shot debug tool: OCR a register photo and print the parsed bill.
func main() {
	p := "uploads/register.png"
	if len(os.Args) > 1 {
		p = os.Args[1]
	}
	text, err := ocr.ExtractText(p)
	fmt.Printf("ExtractText err=%v\n", err)
	fmt.Printf("text=%q\n", text)
	bill := ledger.BuildReport(text, ledger.DefaultVocabulary(), ledger.BillingInput{RatePerLitre: 70})
	fmt.Printf("liters=%.1f rate=%d extra=%d amount=%d method=%s recognized=%v fallback=%v\n",
		bill.Quantity, bill.Rate, bill.Extra, bill.Amount, bill.Method, bill.Recognized, bill.Fallback)
	for _, e := range bill.Entries {
		fmt.Printf("%s  %.1f  %s  (%q)\n", e.Label, e.Quantity, e.Method, e.Token)
	}
}
