package invoice

import (
	"math"
	"reflect"
	"testing"
)

func TestDistributeNoop(t *testing.T) {
	lines := []LineItem{
		{Description: "Ocean Freight", Amount: 100},
		{Description: "税号使用费", Amount: 200},
	}
	dist := Distribute(lines, 300, DefaultKeywords())
	if dist.Outcome != OutcomeNoop {
		t.Fatalf("expected noop, got %s", dist.Outcome)
	}
	for i, line := range dist.Lines {
		if line.Final != lines[i].Amount || line.Discount != 0 {
			t.Fatalf("noop must keep line %d verbatim: %+v", i, line)
		}
	}
}

func TestDistributeSkipsWhenExplicitDiscountsPresent(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 100, DiscountAmount: 10},
		{Description: "代理费", Amount: 200},
	}
	dist := Distribute(lines, 250, DefaultKeywords())
	if dist.Outcome != OutcomeNoop {
		t.Fatalf("explicit per-line discounts must disable redistribution, got %s", dist.Outcome)
	}
}

func TestDistributeSingleGroupEvenSplit(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 100},
		{Description: "税号使用费", Amount: 200},
	}
	dist := Distribute(lines, 270, DefaultKeywords())
	if dist.Outcome != OutcomeDistributed || dist.Groups != 1 {
		t.Fatalf("expected one distributed group, got %+v", dist)
	}
	for i, line := range dist.Lines {
		if line.Discount != 15 {
			t.Fatalf("line %d expected discount 15, got %v", i, line.Discount)
		}
	}
	if dist.Lines[0].Final != 85 || dist.Lines[1].Final != 185 {
		t.Fatalf("unexpected finals: %v, %v", dist.Lines[0].Final, dist.Lines[1].Final)
	}
}

func TestDistributeMultiGroupSplit(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 100},
		{Description: "税号使用费", Amount: 100},
		{Description: "代理费", Amount: 100},
		{Description: "Ocean Freight", Amount: 50},
	}
	// lines sum to 350, authoritative total 290, implied discount 60
	dist := Distribute(lines, 290, DefaultKeywords())
	if dist.Outcome != OutcomeDistributed || dist.Groups != 2 {
		t.Fatalf("expected two distributed groups, got %+v", dist)
	}
	if dist.Lines[0].Discount != 15 || dist.Lines[1].Discount != 15 {
		t.Fatalf("tax number lines expected 15 each, got %v, %v", dist.Lines[0].Discount, dist.Lines[1].Discount)
	}
	if dist.Lines[2].Discount != 30 {
		t.Fatalf("agency line expected 30, got %v", dist.Lines[2].Discount)
	}
	if dist.Lines[3].Discount != 0 || dist.Lines[3].Final != 50 {
		t.Fatalf("ineligible line must be untouched: %+v", dist.Lines[3])
	}
}

func TestDistributeConservation(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 123.45, TaxAmount: 12.3},
		{Description: "进口商代理费", Amount: 678.9},
		{Description: "Ocean Freight", Amount: 1000},
	}
	total := 1700.0
	dist := Distribute(lines, total, DefaultKeywords())
	if dist.Outcome != OutcomeDistributed {
		t.Fatalf("expected distribution, got %s", dist.Outcome)
	}
	var sum float64
	for _, line := range dist.Lines {
		sum += line.Final
	}
	// tax amounts enter the recomputed finals, so conservation holds up to the
	// per-line tax contribution of eligible lines
	if math.Abs(sum-(total+12.3)) > 0.01 {
		t.Fatalf("expected displayed sum %v, got %v", total+12.3, sum)
	}
}

func TestDistributeIdempotent(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 100},
		{Description: "代理费", Amount: 200},
	}
	first := Distribute(lines, 250, DefaultKeywords())
	second := Distribute(lines, 250, DefaultKeywords())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("distribution must be a pure function of its inputs")
	}
	if lines[0].DiscountAmount != 0 || lines[0].FinalAmount != nil {
		t.Fatalf("input lines must never be mutated: %+v", lines[0])
	}
}

func TestDistributeNoEligibleGroups(t *testing.T) {
	lines := []LineItem{
		{Description: "Ocean Freight", Amount: 100},
		{Description: "THC", Amount: 100},
	}
	dist := Distribute(lines, 150, DefaultKeywords())
	if dist.Outcome != OutcomeNoEligible {
		t.Fatalf("expected no_eligible outcome, got %s", dist.Outcome)
	}
	for i, line := range dist.Lines {
		if line.Discount != 0 || line.Final != lines[i].Amount {
			t.Fatalf("no eligible groups means no changes, line %d: %+v", i, line)
		}
	}
	if math.Abs(dist.Residual-50) > 1e-9 {
		t.Fatalf("residual must expose the unresolved mismatch, got %v", dist.Residual)
	}
}

func TestDistributeNegativeFinalIsCredit(t *testing.T) {
	lines := []LineItem{
		{Description: "税号使用费", Amount: 10},
		{Description: "Ocean Freight", Amount: 1000},
	}
	// implied discount 110 lands entirely on the 10 unit line
	dist := Distribute(lines, 900, DefaultKeywords())
	if dist.Outcome != OutcomeDistributed {
		t.Fatalf("expected distribution, got %s", dist.Outcome)
	}
	if dist.Lines[0].Final != -100 || !dist.Lines[0].Credit {
		t.Fatalf("over-discounted line must become a flagged credit: %+v", dist.Lines[0])
	}
}

func TestAggregateUsesAuthoritativeTotal(t *testing.T) {
	lines := []DistributedLine{
		{LineItem: LineItem{Amount: 100, TaxAmount: 10}, Discount: 5, Final: 105},
		{LineItem: LineItem{Amount: 200}, Discount: 0, Final: 200},
	}
	totals := Aggregate(lines, 999)
	if totals.Amount != 300 || totals.TaxAmount != 10 || totals.Discount != 5 || totals.FinalAmount != 305 {
		t.Fatalf("unexpected footer sums: %+v", totals)
	}
	if totals.TotalAmount != 999 {
		t.Fatalf("bottom line must always be the authoritative total, got %v", totals.TotalAmount)
	}
}
