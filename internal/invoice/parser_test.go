package invoice

import (
	"encoding/json"
	"testing"
)

func TestParseLinesStructuredArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"description":"Ocean Freight","amount":1200.5,"taxAmount":120.05},
		{"description":"代理费","amount":300,"finalAmount":280}
	]`)
	lines := ParseLines(raw, "")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Amount != 1200.5 || lines[0].TaxAmount != 120.05 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].FinalAmount == nil || *lines[1].FinalAmount != 280 {
		t.Fatalf("expected finalAmount 280, got %+v", lines[1].FinalAmount)
	}
}

func TestParseLinesJSONEncodedString(t *testing.T) {
	raw := json.RawMessage(`"[{\"description\":\"Customs Clearance\",\"amount\":500}]"`)
	lines := ParseLines(raw, "")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Description != "Customs Clearance" || lines[0].Amount != 500 {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestParseLinesMalformedJSONYieldsEmpty(t *testing.T) {
	if lines := ParseLines(json.RawMessage(`"not json at all"`), "fallback;text"); len(lines) != 0 {
		t.Fatalf("expected empty lines for malformed payload, got %d", len(lines))
	}
	if lines := ParseLines(json.RawMessage(`{"description":"object not array"}`), ""); len(lines) != 0 {
		t.Fatalf("expected empty lines for non-array payload, got %d", len(lines))
	}
}

func TestParseLinesDescriptionFallback(t *testing.T) {
	lines := ParseLines(nil, "Ocean Freight;Customs Clearance;")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Description != "Ocean Freight" || lines[1].Description != "Customs Clearance" {
		t.Fatalf("unexpected descriptions: %q, %q", lines[0].Description, lines[1].Description)
	}
	if lines[0].Amount != 0 || lines[0].FinalAmount != nil {
		t.Fatalf("fallback lines must carry description only: %+v", lines[0])
	}
}

func TestParseLinesCoercesLooseNumbers(t *testing.T) {
	raw := json.RawMessage(`[{"description":"THC","amount":"320.5","taxAmount":"n/a","quantity":null}]`)
	lines := ParseLines(raw, "")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Amount != 320.5 {
		t.Fatalf("expected numeric string coerced to 320.5, got %v", lines[0].Amount)
	}
	if lines[0].TaxAmount != 0 {
		t.Fatalf("expected non-numeric tax coerced to 0, got %v", lines[0].TaxAmount)
	}
	if lines[0].Quantity != nil {
		t.Fatalf("null quantity must stay absent")
	}
}

func TestDetailModeTableWide(t *testing.T) {
	raw := json.RawMessage(`[
		{"description":"Ocean Freight","amount":100},
		{"description":"THC","amount":50,"quantity":2}
	]`)
	lines := ParseLines(raw, "")
	if !DetailMode(lines) {
		t.Fatal("one line with quantity must switch the whole table into detail mode")
	}
	if lines[0].Quantity != nil {
		t.Fatal("detail mode must not invent quantities on other lines")
	}
}

func TestDiscountMode(t *testing.T) {
	plain := []LineItem{{Description: "Ocean Freight", Amount: 100}}
	if DiscountMode(plain) {
		t.Fatal("no discounts present, discount mode must be off")
	}
	discounted := append(plain, LineItem{Description: "代理费", Amount: 50, DiscountAmount: 5})
	if !DiscountMode(discounted) {
		t.Fatal("explicit discount must switch on discount mode")
	}
}
