package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleBasedInsights compares total spend against total budget and emits
// exactly one statement. The AI path may produce several; this path is the
// deterministic floor.
func RuleBasedInsights(txns []Transaction, budgets BudgetMap) []string {
	spent := sumTransactions(txns)
	totalBudget := budgets.Total()

	if spent.GreaterThan(totalBudget) {
		over := spent.Sub(totalBudget)
		return []string{fmt.Sprintf("You've spent $%s over your budget this month.", over.StringFixed(2))}
	}
	under := totalBudget.Sub(spent)
	return []string{fmt.Sprintf("Great job! You're $%s under budget this month.", under.StringFixed(2))}
}

func sumTransactions(txns []Transaction) decimal.Decimal {
	var sum decimal.Decimal
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}
	return sum
}
