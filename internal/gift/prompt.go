package gift

import (
	"fmt"
	"math"
)

const SuggestionCount = 5

const budgetBand = 10.0

func PriceRange(budget float64) (float64, float64) {
	return math.Max(budget-budgetBand, 0), budget + budgetBand
}

func BuildPrompt(keyword string, budget float64) string {
	low, high := PriceRange(budget)
	return fmt.Sprintf(`Suggest %d birthday gift ideas for a colleague. The theme is "%s".
Each gift should cost between $%.2f and $%.2f; the group has collected $%.2f.
Respond only with a JSON array of objects, each with the fields "name", "description", "price" (a number) and "reason".
Do not add any text outside the JSON array.`, SuggestionCount, keyword, low, high, budget)
}
