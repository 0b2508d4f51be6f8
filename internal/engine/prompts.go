package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System prompts per operation. The JSON shape the model must return is
// spelled out in the user prompt; responses are still validated field by
// field before being trusted.
const (
	analysisSystemPrompt   = "You are a financial advisor AI that provides budget recommendations based on spending data."
	adaptationSystemPrompt = "You are a financial advisor AI that helps adjust budgets based on life events."
	insightsSystemPrompt   = "You are a friendly financial assistant that provides helpful spending insights."
	questionSystemPrompt   = "You are a helpful financial advisor AI."
)

const jsonOnlyRules = "Return ONLY valid raw JSON. Do NOT wrap the response in code fences. Do NOT use ```json or any Markdown."

func formatTransactionsForPrompt(txns []Transaction) string {
	var b strings.Builder
	for i, t := range txns {
		if i > 0 {
			b.WriteString("\n")
		}
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			cat = Uncategorized
		}
		desc := t.Description
		if desc == "" {
			desc = "N/A"
		}
		fmt.Fprintf(&b, "Date: %s, Category: %s, Amount: $%s, Description: %s",
			t.Date.Format("2006-01-02"), cat, t.Amount.StringFixed(2), desc)
	}
	return b.String()
}

func formatBudgetsForPrompt(budgets BudgetMap) string {
	m := make(map[string]string, len(budgets))
	for _, b := range budgets {
		m[b.Category] = b.Limit.String()
	}
	out, _ := json.Marshal(m)
	return string(out)
}

func analysisPrompt(txns []Transaction, monthlyIncome string, budgets BudgetMap, windowMonths int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following spending data for the past %d months:\n\n", windowMonths)
	b.WriteString(formatTransactionsForPrompt(txns))
	fmt.Fprintf(&b, "\n\nThe user's monthly income is $%s.\n", monthlyIncome)
	fmt.Fprintf(&b, "Current budget limits: %s\n\n", formatBudgetsForPrompt(budgets))
	b.WriteString("Provide:\n")
	b.WriteString("1. Realistic budget recommendations per category (as JSON array with category_name, recommended_limit, reasoning)\n")
	b.WriteString("2. Key spending patterns identified (as JSON array of strings)\n")
	b.WriteString("3. Specific actionable suggestions to optimize spending (as JSON array of strings)\n\n")
	b.WriteString("Format your response as JSON:\n")
	b.WriteString(`{
  "recommendations": [
    {"category_name": "...", "recommended_limit": 0.0, "reasoning": "..."}
  ],
  "patterns": ["pattern1", "pattern2"],
  "suggestions": ["suggestion1", "suggestion2"]
}`)
	b.WriteString("\n\n" + jsonOnlyRules)
	return b.String()
}

func adaptationPrompt(eventType, eventDescription string, budgets BudgetMap, spendingPatterns BudgetMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user has experienced this life event: %s\n", eventType)
	fmt.Fprintf(&b, "Description: %s\n\n", eventDescription)
	fmt.Fprintf(&b, "Current budget: %s\n", formatBudgetsForPrompt(budgets))
	fmt.Fprintf(&b, "Typical spending patterns: %s\n\n", formatBudgetsForPrompt(spendingPatterns))
	b.WriteString("Suggest how their budget should be adjusted and explain why. Format as JSON:\n")
	b.WriteString(`{
  "adjustments": [
    {"category_name": "...", "new_limit": 0.0, "adjustment_percentage": 0.0, "reasoning": "..."}
  ],
  "overall_advice": "..."
}`)
	b.WriteString("\n\n" + jsonOnlyRules)
	return b.String()
}

func insightsPrompt(txns []Transaction, budgets BudgetMap) string {
	var b strings.Builder
	b.WriteString("Based on this month's transactions:\n")
	b.WriteString(formatTransactionsForPrompt(txns))
	b.WriteString("\n\nCompared to the budget:\n")
	b.WriteString(formatBudgetsForPrompt(budgets))
	b.WriteString("\n\nGenerate 3-5 conversational insights about the user's spending behavior. ")
	b.WriteString("Be specific, actionable, and encouraging. Format as JSON array of strings:\n")
	b.WriteString(`["insight1", "insight2", "insight3"]`)
	b.WriteString("\n\n" + jsonOnlyRules)
	return b.String()
}

func questionPrompt(question string, qc QuestionContext) string {
	ctxJSON, _ := json.MarshalIndent(map[string]any{
		"monthly_income": qc.MonthlyIncome.String(),
		"budgets":        budgetContextMap(qc.Budgets),
	}, "", "  ")

	var b strings.Builder
	b.WriteString("User's financial context:\n")
	b.Write(ctxJSON)
	fmt.Fprintf(&b, "\n\nUser question: %s\n\n", question)
	b.WriteString("Provide a helpful, accurate answer about their budget and finances.")
	return b.String()
}

func budgetContextMap(budgets BudgetMap) map[string]string {
	m := make(map[string]string, len(budgets))
	for _, b := range budgets {
		m[b.Category] = b.Limit.String()
	}
	return m
}
