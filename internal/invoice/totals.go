package invoice

// Totals holds the footer sums for the invoice table. TotalAmount is the
// authoritative invoice total and is always the value rendered as the bottom
// line, never the locally summed final amount.
type Totals struct {
	Amount      float64 `json:"amount"`
	TaxAmount   float64 `json:"taxAmount"`
	Discount    float64 `json:"discountAmount"`
	FinalAmount float64 `json:"finalAmount"`
	TotalAmount float64 `json:"totalAmount"`
}

// Aggregate sums the reconciled line columns for footer display.
func Aggregate(lines []DistributedLine, totalAmount float64) Totals {
	totals := Totals{TotalAmount: totalAmount}
	for _, line := range lines {
		totals.Amount += line.Amount
		totals.TaxAmount += line.TaxAmount
		totals.Discount += line.Discount
		totals.FinalAmount += line.Final
	}
	return totals
}
