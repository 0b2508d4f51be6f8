// Package engine turns transaction history and a financial profile into
// budget recommendations, life-event adjustments, and spending insights.
// It tries a configured AI provider first and falls back to deterministic
// rule-based policies on any provider failure.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category assigned to transactions without one.
const Uncategorized = "Uncategorized"

// Transaction is one dated ledger entry supplied by the caller.
// Positive amounts are expenses.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CategorySpend is a per-category aggregate over one call's transaction
// window. Derived and transient; never cached across calls.
type CategorySpend struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// BudgetEntry pairs a category with its monthly limit.
type BudgetEntry struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// BudgetMap is an ordered set of budget limits keyed by category. A slice
// rather than a map so that iteration order is stable and adjustments come
// back in the order the budgets were given.
type BudgetMap []BudgetEntry

// Total sums all budget limits.
func (b BudgetMap) Total() decimal.Decimal {
	var sum decimal.Decimal
	for _, e := range b {
		sum = sum.Add(e.Limit)
	}
	return sum
}

// Recommendation is a suggested monthly limit for one category.
// Category IDs are the caller's namespace; only names appear here.
type Recommendation struct {
	Category         string          `json:"category_name"`
	RecommendedLimit decimal.Decimal `json:"recommended_limit"`
	Reasoning        string          `json:"reasoning"`
}

// AnalysisResult is the outcome of a spending analysis.
type AnalysisResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Patterns        []string         `json:"patterns"`
	Suggestions     []string         `json:"suggestions"`
}

// LifeEventAdjustment rescales one existing budget after a life event.
type LifeEventAdjustment struct {
	Category          string          `json:"category_name"`
	NewLimit          decimal.Decimal `json:"new_limit"`
	AdjustmentPercent float64         `json:"adjustment_percentage"`
	Reasoning         string          `json:"reasoning"`
}

// AdaptationResult is the outcome of a life-event adaptation.
type AdaptationResult struct {
	Adjustments   []LifeEventAdjustment `json:"adjustments"`
	OverallAdvice string                `json:"overall_advice"`
}

// QuestionContext is the financial context for a free-form question.
type QuestionContext struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	Budgets       BudgetMap       `json:"budgets"`
}
