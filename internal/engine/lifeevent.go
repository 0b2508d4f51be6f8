package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// defaultLifeEventAdvice accompanies every deterministic adaptation,
// including the no-match case.
const defaultLifeEventAdvice = "Consider reviewing your budget regularly after major life changes."

var (
	expansionFactor = decimal.RequireFromString("1.2")
	reductionFactor = decimal.RequireFromString("0.8")
)

// AdjustForLifeEvent rescales every budget according to a classified life
// event. Classification is a case-insensitive substring match, first rule
// wins: "job"/"income" expand by 20%, "loss"/"unemployment" reduce by 20%.
// "Lost my job" therefore expands, because the job rule is checked first.
// An unrecognized event yields an empty adjustment list, not an error.
// Adjustments preserve budget order.
func AdjustForLifeEvent(eventType string, budgets BudgetMap) AdaptationResult {
	ev := strings.ToLower(eventType)
	switch {
	case strings.Contains(ev, "job") || strings.Contains(ev, "income"):
		return rescaleBudgets(budgets, expansionFactor, 20, "Income increase allows for budget expansion")
	case strings.Contains(ev, "loss") || strings.Contains(ev, "unemployment"):
		return rescaleBudgets(budgets, reductionFactor, -20, "Reduced income requires budget reduction")
	default:
		return AdaptationResult{
			Adjustments:   []LifeEventAdjustment{},
			OverallAdvice: defaultLifeEventAdvice,
		}
	}
}

func rescaleBudgets(budgets BudgetMap, factor decimal.Decimal, pct float64, reason string) AdaptationResult {
	adjustments := make([]LifeEventAdjustment, 0, len(budgets))
	for _, b := range budgets {
		adjustments = append(adjustments, LifeEventAdjustment{
			Category:          b.Category,
			NewLimit:          b.Limit.Mul(factor),
			AdjustmentPercent: pct,
			Reasoning:         reason,
		})
	}
	return AdaptationResult{
		Adjustments:   adjustments,
		OverallAdvice: defaultLifeEventAdvice,
	}
}
