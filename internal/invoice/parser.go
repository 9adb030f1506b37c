// Package invoice turns raw upstream invoice payloads into a reconciled,
// render-ready view. The ERP owns the authoritative invoice total; this
// package back-derives a per-line discount breakdown that makes the displayed
// figures consistent with it.
package invoice

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LineItem is one normalised billable charge row. Quantity, UnitPrice and
// FinalAmount are pointers because their mere presence changes behaviour:
// quantity or unit price on any line switches the whole table into detailed
// mode, and a supplied final amount overrides the derived one.
type LineItem struct {
	Description     string   `json:"description"`
	Quantity        *float64 `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unitPrice,omitempty"`
	Amount          float64  `json:"amount"`
	TaxRate         float64  `json:"taxRate,omitempty"`
	TaxAmount       float64  `json:"taxAmount,omitempty"`
	DiscountPercent float64  `json:"discountPercent,omitempty"`
	DiscountAmount  float64  `json:"discountAmount,omitempty"`
	FinalAmount     *float64 `json:"finalAmount,omitempty"`
	ContainerNumber string   `json:"containerNumber,omitempty"`
}

// finalForTotal is the line's contribution when summing against the
// authoritative invoice total.
func (l LineItem) finalForTotal() float64 {
	if l.FinalAmount != nil {
		return *l.FinalAmount
	}
	return l.Amount
}

// displayFinal is the line's rendered final amount when no redistribution
// applies.
func (l LineItem) displayFinal() float64 {
	if l.FinalAmount != nil {
		return *l.FinalAmount
	}
	return l.Amount + l.TaxAmount - l.DiscountAmount
}

// ParseLines normalises the raw items field into a line list. The field may be
// a structured array, a JSON-encoded string wrapping such an array, or absent.
// Malformed JSON yields an empty list; an absent field falls back to splitting
// the flat description on ';' into text-only lines. No error is ever returned,
// bad input degrades to an empty or text-only table.
func ParseLines(raw json.RawMessage, description string) []LineItem {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return linesFromDescription(description)
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return nil
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil
	}

	lines := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lineFromRow(row))
	}
	return lines
}

func linesFromDescription(description string) []LineItem {
	var lines []LineItem
	for _, segment := range strings.Split(description, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		lines = append(lines, LineItem{Description: segment})
	}
	return lines
}

func lineFromRow(row map[string]any) LineItem {
	line := LineItem{
		Description:     asString(row["description"]),
		ContainerNumber: asString(row["containerNumber"]),
		Amount:          asNumber(row["amount"]),
		TaxRate:         asNumber(row["taxRate"]),
		TaxAmount:       asNumber(row["taxAmount"]),
		DiscountPercent: asNumber(row["discountPercent"]),
		DiscountAmount:  asNumber(row["discountAmount"]),
	}
	if value, ok := row["quantity"]; ok && value != nil {
		n := asNumber(value)
		line.Quantity = &n
	}
	if value, ok := row["unitPrice"]; ok && value != nil {
		n := asNumber(value)
		line.UnitPrice = &n
	}
	if value, ok := row["finalAmount"]; ok && value != nil {
		n := asNumber(value)
		line.FinalAmount = &n
	}
	return line
}

// asNumber coerces loose upstream values to a float. Anything that is not
// usable as a number becomes 0 so NaN never reaches the totals.
func asNumber(value any) float64 {
	var n float64
	switch v := value.(type) {
	case json.Number:
		n, _ = v.Float64()
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		n, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

// DetailMode reports whether any line defines quantity or unit price. The
// flag is table-wide: one detailed line makes every line render the Quantity
// and Unit-Price columns.
func DetailMode(lines []LineItem) bool {
	for _, line := range lines {
		if line.Quantity != nil || line.UnitPrice != nil {
			return true
		}
	}
	return false
}

// DiscountMode reports whether any line carries an explicit positive discount,
// which switches on the discount columns for the whole table.
func DiscountMode(lines []LineItem) bool {
	for _, line := range lines {
		if line.DiscountPercent > 0 || line.DiscountAmount > 0 {
			return true
		}
	}
	return false
}
