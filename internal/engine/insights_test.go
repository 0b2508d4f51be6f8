package engine

import (
	"strings"
	"testing"
)

func TestInsightsOverBudget(t *testing.T) {
	budgets := BudgetMap{{Category: "Food", Limit: d("400")}}
	insights := RuleBasedInsights([]Transaction{
		tx(1, "Food", "300"),
		tx(2, "Food", "250.50"),
	}, budgets)

	if len(insights) != 1 {
		t.Fatalf("got %d insights, want exactly 1", len(insights))
	}
	if want := "You've spent $150.50 over your budget this month."; insights[0] != want {
		t.Errorf("insight = %q, want %q", insights[0], want)
	}
}

func TestInsightsUnderBudget(t *testing.T) {
	budgets := BudgetMap{
		{Category: "Food", Limit: d("400")},
		{Category: "Fun", Limit: d("100")},
	}
	insights := RuleBasedInsights([]Transaction{tx(1, "Food", "320")}, budgets)

	if len(insights) != 1 {
		t.Fatalf("got %d insights, want exactly 1", len(insights))
	}
	if want := "Great job! You're $180.00 under budget this month."; insights[0] != want {
		t.Errorf("insight = %q, want %q", insights[0], want)
	}
}

func TestInsightsNoDataStillProducesOne(t *testing.T) {
	insights := RuleBasedInsights(nil, nil)
	if len(insights) != 1 {
		t.Fatalf("got %d insights, want exactly 1", len(insights))
	}
	if !strings.Contains(insights[0], "$0.00") {
		t.Errorf("insight should report a zero delta, got %q", insights[0])
	}
}
