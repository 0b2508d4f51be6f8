package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lthomson/pennywise/internal/llm"
)

// notConfiguredAnswer is returned by AnswerQuestion when no provider is set.
const notConfiguredAnswer = "AI service is not configured. Please check your API keys."

const (
	analysisMaxTokens = 2000
	answerMaxTokens   = 1000
)

// Engine orchestrates the AI path and the deterministic fallback. It holds
// no mutable state between calls, so concurrent use needs no locking.
// A nil provider means every call takes the fallback path.
type Engine struct {
	provider llm.Provider
	log      zerolog.Logger
}

// New builds an engine around the given provider. Construct once and share.
func New(provider llm.Provider, log zerolog.Logger) *Engine {
	return &Engine{provider: provider, log: log}
}

// RecommendBudgets analyzes spending and produces per-category budget
// recommendations. Any AI failure — missing credential, transport error,
// malformed payload — silently degrades to the rule-based policy, so the
// call always returns a usable result.
func (e *Engine) RecommendBudgets(ctx context.Context, txns []Transaction, monthlyIncome decimal.Decimal, currentBudgets BudgetMap, windowMonths int) AnalysisResult {
	if e.provider != nil {
		raw, err := e.provider.Generate(ctx, llm.Request{
			System:    analysisSystemPrompt,
			Prompt:    analysisPrompt(txns, monthlyIncome.String(), currentBudgets, windowMonths),
			MaxTokens: analysisMaxTokens,
		})
		if err == nil {
			res, perr := parseAnalysis(raw)
			if perr == nil {
				clampRecommendations(res.Recommendations, monthlyIncome)
				return res
			}
			e.logFallback("recommend_budgets", perr)
		} else {
			e.logFallback("recommend_budgets", err)
		}
	}
	return RuleBasedRecommendations(AggregateByCategory(txns), monthlyIncome, currentBudgets)
}

// AdaptForLifeEvent rescales the current budgets for a life event.
// spendingPatterns is typical per-category spend, used only in the prompt.
func (e *Engine) AdaptForLifeEvent(ctx context.Context, eventType, eventDescription string, currentBudgets BudgetMap, spendingPatterns BudgetMap) AdaptationResult {
	if e.provider != nil {
		raw, err := e.provider.Generate(ctx, llm.Request{
			System:    adaptationSystemPrompt,
			Prompt:    adaptationPrompt(eventType, eventDescription, currentBudgets, spendingPatterns),
			MaxTokens: analysisMaxTokens,
		})
		if err == nil {
			res, perr := parseAdaptation(raw)
			if perr == nil {
				return res
			}
			e.logFallback("adapt_for_life_event", perr)
		} else {
			e.logFallback("adapt_for_life_event", err)
		}
	}
	return AdjustForLifeEvent(eventType, currentBudgets)
}

// GenerateInsights produces conversational statements about spending
// behavior: 3-5 from the AI path, exactly one from the fallback.
func (e *Engine) GenerateInsights(ctx context.Context, txns []Transaction, budgets BudgetMap) []string {
	if e.provider != nil {
		raw, err := e.provider.Generate(ctx, llm.Request{
			System:    insightsSystemPrompt,
			Prompt:    insightsPrompt(txns, budgets),
			MaxTokens: answerMaxTokens,
		})
		if err == nil {
			insights, perr := parseInsights(raw)
			if perr == nil {
				return insights
			}
			e.logFallback("generate_insights", perr)
		} else {
			e.logFallback("generate_insights", err)
		}
	}
	return RuleBasedInsights(txns, budgets)
}

// AnswerQuestion returns a single free-form answer. There is no rule-based
// equivalent: without a provider it reports that the service is not
// configured, and a provider failure becomes an apologetic message rather
// than an error.
func (e *Engine) AnswerQuestion(ctx context.Context, question string, qc QuestionContext) string {
	if e.provider == nil {
		return notConfiguredAnswer
	}
	raw, err := e.provider.Generate(ctx, llm.Request{
		System:    questionSystemPrompt,
		Prompt:    questionPrompt(question, qc),
		MaxTokens: answerMaxTokens,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return notConfiguredAnswer
		}
		e.logFallback("answer_question", err)
		return fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}
	return raw
}

// clampRecommendations enforces the cap invariant on AI-returned limits:
// never negative, and never above half the monthly income when income is
// positive. The deterministic policy already satisfies both.
func clampRecommendations(recs []Recommendation, monthlyIncome decimal.Decimal) {
	capLimit := monthlyIncome.Mul(incomeCapRatio)
	capped := monthlyIncome.IsPositive()
	for i := range recs {
		if recs[i].RecommendedLimit.IsNegative() {
			recs[i].RecommendedLimit = decimal.Zero
		}
		if capped && recs[i].RecommendedLimit.GreaterThan(capLimit) {
			recs[i].RecommendedLimit = capLimit
		}
	}
}

func (e *Engine) logFallback(op string, err error) {
	e.log.Warn().Str("op", op).Err(err).Msg("ai path failed, degrading")
}
