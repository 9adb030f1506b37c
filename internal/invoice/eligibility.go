package invoice

import "strings"

// KeywordSet classifies line descriptions as discount-eligible. A description
// is eligible when it contains at least one keyword as a case-sensitive
// substring. The defaults cover the service surcharge categories an implied
// invoice-level discount is spread across.
type KeywordSet []string

// DefaultKeywords returns the standard eligibility keyword set: tax number
// usage fee, importer agency fee and the generic agency fee.
func DefaultKeywords() KeywordSet {
	return KeywordSet{"税号使用费", "进口商代理费", "代理费"}
}

// NewKeywordSet builds a set from configured keywords, dropping blanks and
// falling back to the defaults when nothing usable remains.
func NewKeywordSet(keywords []string) KeywordSet {
	set := make(KeywordSet, 0, len(keywords))
	for _, keyword := range keywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			set = append(set, trimmed)
		}
	}
	if len(set) == 0 {
		return DefaultKeywords()
	}
	return set
}

// Eligible reports whether a line with this description may absorb a share of
// an implied invoice-level discount.
func (k KeywordSet) Eligible(description string) bool {
	for _, keyword := range k {
		if strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}
