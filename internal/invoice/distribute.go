package invoice

import "math"

// reconcileTolerance is the float tolerance below which line totals and the
// authoritative invoice total count as matching.
const reconcileTolerance = 0.01

// Distribution outcomes, used as metric labels and carried on the view.
const (
	OutcomeNoop        = "noop"
	OutcomeDistributed = "distributed"
	OutcomeNoEligible  = "no_eligible"
)

// DistributedLine is one line with its render-time derived figures. The
// source LineItem is embedded untouched; Discount and Final are the displayed
// values after reconciliation. Credit marks a negative final amount, which is
// rendered distinctly but is not an error.
type DistributedLine struct {
	LineItem
	Discount float64 `json:"distributedDiscount"`
	Final    float64 `json:"computedFinal"`
	Credit   bool    `json:"credit,omitempty"`
}

// Distribution is the reconciled line set plus how the reconciliation went.
// Residual is the signed difference between the summed displayed finals and
// the authoritative total that remains after distribution.
type Distribution struct {
	Lines    []DistributedLine `json:"lines"`
	Outcome  string            `json:"outcome"`
	Groups   int               `json:"groups,omitempty"`
	Residual float64           `json:"residual"`
}

// Distribute reconciles the parsed lines against the authoritative invoice
// total. When the lines sum differs from the total by more than the tolerance
// and no explicit per-line discount was supplied, the implied discount is
// split evenly across distinct eligible description groups, then evenly
// across each group's members. It is a pure function: the input lines are
// never mutated and repeated calls yield identical results.
func Distribute(lines []LineItem, totalAmount float64, keywords KeywordSet) Distribution {
	var sumFinal, sumDiscount float64
	for _, line := range lines {
		sumFinal += line.finalForTotal()
		sumDiscount += line.DiscountAmount
	}

	needsDistribution := sumDiscount == 0 && math.Abs(sumFinal-totalAmount) > reconcileTolerance
	if !needsDistribution {
		return verbatim(lines, totalAmount, OutcomeNoop)
	}

	totalDiscount := sumFinal - totalAmount

	// Group eligible lines by exact description text. Lines sharing identical
	// descriptions form one group and split that group's share evenly.
	groupSizes := make(map[string]int)
	for _, line := range lines {
		if keywords.Eligible(line.Description) {
			groupSizes[line.Description]++
		}
	}
	if len(groupSizes) == 0 {
		// Nothing can absorb the discount. The mismatch stays visible in the
		// footer; the authoritative total is still what renders as ground truth.
		return verbatim(lines, totalAmount, OutcomeNoEligible)
	}

	discountPerGroup := totalDiscount / float64(len(groupSizes))

	out := make([]DistributedLine, len(lines))
	var displayed float64
	for i, line := range lines {
		dl := DistributedLine{LineItem: line}
		if keywords.Eligible(line.Description) {
			perLine := discountPerGroup / float64(groupSizes[line.Description])
			dl.Discount = perLine
			dl.Final = line.Amount + line.TaxAmount - perLine
		} else {
			dl.Discount = line.DiscountAmount
			dl.Final = line.displayFinal()
		}
		dl.Credit = dl.Final < 0
		displayed += dl.Final
		out[i] = dl
	}

	return Distribution{
		Lines:    out,
		Outcome:  OutcomeDistributed,
		Groups:   len(groupSizes),
		Residual: displayed - totalAmount,
	}
}

func verbatim(lines []LineItem, totalAmount float64, outcome string) Distribution {
	out := make([]DistributedLine, len(lines))
	var displayed float64
	for i, line := range lines {
		out[i] = DistributedLine{
			LineItem: line,
			Discount: line.DiscountAmount,
			Final:    line.displayFinal(),
			Credit:   line.displayFinal() < 0,
		}
		displayed += out[i].Final
	}
	return Distribution{Lines: out, Outcome: outcome, Residual: displayed - totalAmount}
}
