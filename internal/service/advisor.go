// Package service wires the recommendation engine to persistence.
package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lthomson/pennywise/internal/database/repository"
	"github.com/lthomson/pennywise/internal/engine"
)

// Advisor runs engine operations and records the noteworthy output as
// insights so it can be surfaced later.
type Advisor struct {
	engine   *engine.Engine
	insights *repository.InsightRepo
	log      zerolog.Logger
}

func NewAdvisor(eng *engine.Engine, insights *repository.InsightRepo, log zerolog.Logger) *Advisor {
	return &Advisor{engine: eng, insights: insights, log: log}
}

// Analyze produces budget recommendations and stores any detected patterns
// and suggestions. Storage failures are logged, not returned; the analysis
// itself always succeeds.
func (a *Advisor) Analyze(ctx context.Context, txns []engine.Transaction, monthlyIncome decimal.Decimal, currentBudgets engine.BudgetMap, windowMonths int) engine.AnalysisResult {
	res := a.engine.RecommendBudgets(ctx, txns, monthlyIncome, currentBudgets, windowMonths)
	for _, p := range res.Patterns {
		a.record(ctx, repository.KindPattern, p)
	}
	for _, s := range res.Suggestions {
		a.record(ctx, repository.KindSuggestion, s)
	}
	return res
}

// Adapt rescales budgets for a life event and stores the overall advice.
func (a *Advisor) Adapt(ctx context.Context, eventType, eventDescription string, currentBudgets engine.BudgetMap, spendingPatterns engine.BudgetMap) engine.AdaptationResult {
	res := a.engine.AdaptForLifeEvent(ctx, eventType, eventDescription, currentBudgets, spendingPatterns)
	if res.OverallAdvice != "" {
		a.record(ctx, repository.KindLifeEvent, res.OverallAdvice)
	}
	return res
}

// Insights generates spending insights and stores each one.
func (a *Advisor) Insights(ctx context.Context, txns []engine.Transaction, budgets engine.BudgetMap) []string {
	out := a.engine.GenerateInsights(ctx, txns, budgets)
	for _, s := range out {
		a.record(ctx, repository.KindSpending, s)
	}
	return out
}

// Ask forwards a free-form question. Answers are not persisted.
func (a *Advisor) Ask(ctx context.Context, question string, qc engine.QuestionContext) string {
	return a.engine.AnswerQuestion(ctx, question, qc)
}

// Recent returns the newest stored insights.
func (a *Advisor) Recent(ctx context.Context, limit int) ([]repository.Insight, error) {
	return a.insights.ListRecent(ctx, limit)
}

func (a *Advisor) record(ctx context.Context, kind, content string) {
	if a.insights == nil {
		return
	}
	if _, err := a.insights.Add(ctx, kind, content); err != nil {
		a.log.Warn().Str("kind", kind).Err(err).Msg("failed to store insight")
	}
}
