package gift

import (
	"fmt"
	"strings"
)

type fallbackItem struct {
	name        string
	description string
	reason      string
}

var fallbackTables = map[string][]fallbackItem{
	KeywordPractical: {
		{"Insulated Travel Mug", "A leak-proof stainless steel mug that keeps coffee hot for hours.", "Useful every single workday."},
		{"Desk Organizer Set", "Bamboo trays and holders to tame a cluttered desk.", "Makes the daily routine a little tidier."},
		{"Wireless Charging Pad", "A slim Qi charger for phone and earbuds.", "One less cable on the desk."},
	},
	KeywordFun: {
		{"Party Board Game", "A quick-to-learn game for game nights with friends.", "Good for laughs with a group."},
		{"Custom Photo Puzzle", "A 500-piece puzzle printed with a team photo.", "A personal touch from the whole team."},
		{"Karaoke Microphone", "A Bluetooth microphone with a built-in speaker.", "Turns any evening into a party."},
	},
	KeywordLuxury: {
		{"Artisan Chocolate Collection", "A curated box of single-origin chocolates.", "A small indulgence worth sharing."},
		{"Spa Day Voucher", "A voucher for a massage and spa treatment.", "A well-earned break."},
		{"Leather Notebook", "A hand-stitched leather journal with refillable paper.", "Something elegant to keep for years."},
	},
	KeywordPremium: {
		{"Noise-Cancelling Headphones", "Over-ear headphones with active noise cancellation.", "Focus at work and calm on the commute."},
		{"Fine Dining Experience", "A tasting-menu dinner for two.", "A memorable evening out."},
	},
}

// Fallback returns the static suggestions for keyword, each priced at the full budget.
// Unknown keywords get a generic pair whose names carry the keyword verbatim.
func Fallback(keyword string, budget float64) []Suggestion {
	items, ok := fallbackTables[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return genericFallback(keyword, budget)
	}

	out := make([]Suggestion, 0, len(items))
	for _, it := range items {
		out = append(out, Suggestion{
			Name:        it.name,
			Description: it.description,
			Price:       budget,
			Reason:      it.reason,
		})
	}
	return out
}

func genericFallback(keyword string, budget float64) []Suggestion {
	return []Suggestion{
		{
			Name:        fmt.Sprintf("%s Gift Set", keyword),
			Description: fmt.Sprintf("A curated set of %s items chosen for the birthday.", keyword),
			Price:       budget,
			Reason:      fmt.Sprintf("Matches the %s theme.", keyword),
		},
		{
			Name:        fmt.Sprintf("%s Experience Voucher", keyword),
			Description: fmt.Sprintf("A voucher for a %s experience of their choice.", keyword),
			Price:       budget,
			Reason:      "Lets them pick what they enjoy most.",
		},
	}
}
