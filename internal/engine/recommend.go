package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// recommendHeadroom gives 10% slack over observed spend.
	recommendHeadroom = decimal.RequireFromString("1.1")
	// incomeCapRatio caps any single category at half the monthly income.
	incomeCapRatio = decimal.RequireFromString("0.5")
)

var (
	fallbackPatterns = []string{
		"Spending patterns calculated from historical data",
	}
	fallbackSuggestions = []string{
		"Consider setting budgets 10% above your average spending to allow for flexibility",
		"Review your top spending categories regularly",
	}
)

// RuleBasedRecommendations is the deterministic budget policy: 110% of the
// observed spend per category, capped at half the monthly income when income
// is positive. Income of zero or less means no cap. Categories without
// positive observed spend produce no recommendation. Output follows the
// encounter order of the aggregates. currentBudgets is informational only.
//
// The observed spend is the windowed sum, not a per-month average; the
// reasoning text inherits the looser "average spending" wording.
func RuleBasedRecommendations(spend []CategorySpend, monthlyIncome decimal.Decimal, currentBudgets BudgetMap) AnalysisResult {
	capLimit := monthlyIncome.Mul(incomeCapRatio)
	capped := monthlyIncome.IsPositive()

	recs := make([]Recommendation, 0, len(spend))
	for _, cs := range spend {
		if !cs.Total.IsPositive() {
			continue
		}
		limit := cs.Total.Mul(recommendHeadroom)
		if capped && limit.GreaterThan(capLimit) {
			limit = capLimit
		}
		recs = append(recs, Recommendation{
			Category:         cs.Category,
			RecommendedLimit: limit,
			Reasoning:        fmt.Sprintf("Based on your average spending of $%s in this category", cs.Total.StringFixed(2)),
		})
	}

	return AnalysisResult{
		Recommendations: recs,
		Patterns:        append([]string(nil), fallbackPatterns...),
		Suggestions:     append([]string(nil), fallbackSuggestions...),
	}
}
