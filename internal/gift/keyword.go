package gift

import "strings"

const (
	KeywordPractical = "practical"
	KeywordFun       = "fun"
	KeywordLuxury    = "luxury"
	KeywordPremium   = "premium"
)

var PresetKeywords = []string{KeywordPractical, KeywordFun, KeywordLuxury, KeywordPremium}

// KeywordForBudget maps a budget in whole currency units onto a preset keyword.
// Each threshold belongs to the lower band.
func KeywordForBudget(budget float64) string {
	switch {
	case budget <= 15:
		return KeywordPractical
	case budget <= 25:
		return KeywordFun
	case budget <= 35:
		return KeywordLuxury
	default:
		return KeywordPremium
	}
}

// ResolveKeyword picks the custom keyword, then the chosen one, then the budget-derived one.
func ResolveKeyword(chosen, custom string, budget float64) string {
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	if c := strings.TrimSpace(chosen); c != "" {
		return c
	}
	return KeywordForBudget(budget)
}
