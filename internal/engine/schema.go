package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lthomson/pennywise/internal/llm"
)

// ErrBadResponse marks a provider payload that is syntactically or
// structurally wrong. The facade treats it as a fallback trigger.
var ErrBadResponse = errors.New("engine: malformed provider response")

// parseAnalysis validates a provider payload against the analysis schema:
// a required recommendations array of {category_name, recommended_limit,
// reasoning} plus optional patterns and suggestions string arrays.
func parseAnalysis(raw string) (AnalysisResult, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return AnalysisResult{}, err
	}

	items, err := arrayField(obj, "recommendations", true)
	if err != nil {
		return AnalysisResult{}, err
	}
	recs := make([]Recommendation, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return AnalysisResult{}, fmt.Errorf("%w: recommendations[%d] is %T, want object", ErrBadResponse, i, item)
		}
		name, err := stringField(m, "category_name")
		if err != nil {
			return AnalysisResult{}, fmt.Errorf("recommendations[%d]: %w", i, err)
		}
		limit, err := numberField(m, "recommended_limit")
		if err != nil {
			return AnalysisResult{}, fmt.Errorf("recommendations[%d]: %w", i, err)
		}
		reasoning, err := stringField(m, "reasoning")
		if err != nil {
			return AnalysisResult{}, fmt.Errorf("recommendations[%d]: %w", i, err)
		}
		recs = append(recs, Recommendation{Category: name, RecommendedLimit: limit, Reasoning: reasoning})
	}

	patterns, err := stringSliceField(obj, "patterns")
	if err != nil {
		return AnalysisResult{}, err
	}
	suggestions, err := stringSliceField(obj, "suggestions")
	if err != nil {
		return AnalysisResult{}, err
	}

	return AnalysisResult{Recommendations: recs, Patterns: patterns, Suggestions: suggestions}, nil
}

// parseAdaptation validates an adaptation payload: a required adjustments
// array of {category_name, new_limit, adjustment_percentage, reasoning} and
// a required overall_advice string.
func parseAdaptation(raw string) (AdaptationResult, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return AdaptationResult{}, err
	}

	items, err := arrayField(obj, "adjustments", true)
	if err != nil {
		return AdaptationResult{}, err
	}
	adjustments := make([]LifeEventAdjustment, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return AdaptationResult{}, fmt.Errorf("%w: adjustments[%d] is %T, want object", ErrBadResponse, i, item)
		}
		name, err := stringField(m, "category_name")
		if err != nil {
			return AdaptationResult{}, fmt.Errorf("adjustments[%d]: %w", i, err)
		}
		limit, err := numberField(m, "new_limit")
		if err != nil {
			return AdaptationResult{}, fmt.Errorf("adjustments[%d]: %w", i, err)
		}
		pct, err := numberField(m, "adjustment_percentage")
		if err != nil {
			return AdaptationResult{}, fmt.Errorf("adjustments[%d]: %w", i, err)
		}
		reasoning, err := stringField(m, "reasoning")
		if err != nil {
			return AdaptationResult{}, fmt.Errorf("adjustments[%d]: %w", i, err)
		}
		pctFloat, _ := pct.Float64()
		adjustments = append(adjustments, LifeEventAdjustment{
			Category:          name,
			NewLimit:          limit,
			AdjustmentPercent: pctFloat,
			Reasoning:         reasoning,
		})
	}

	advice, err := stringField(obj, "overall_advice")
	if err != nil {
		return AdaptationResult{}, err
	}

	return AdaptationResult{Adjustments: adjustments, OverallAdvice: advice}, nil
}

// parseInsights accepts either a bare JSON array of strings or an object
// with an "insights" string array.
func parseInsights(raw string) ([]string, error) {
	v, err := llm.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case map[string]any:
		arr, err := arrayField(val, "insights", true)
		if err != nil {
			return nil, err
		}
		items = arr
	default:
		return nil, fmt.Errorf("%w: top-level value is %T, want array or object", ErrBadResponse, v)
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: insights[%d] is %T, want string", ErrBadResponse, i, item)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: insights array is empty", ErrBadResponse)
	}
	return out, nil
}

func parseObject(raw string) (map[string]any, error) {
	v, err := llm.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, want object", ErrBadResponse, v)
	}
	return obj, nil
}

func arrayField(m map[string]any, key string, required bool) ([]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("%w: missing required field %q", ErrBadResponse, key)
		}
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is %T, want array", ErrBadResponse, key, v)
	}
	return arr, nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required field %q", ErrBadResponse, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrBadResponse, key, v)
	}
	return s, nil
}

// numberField reads a required JSON number into a decimal. Numeric strings
// are rejected; the schema says number.
func numberField(m map[string]any, key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: missing required field %q", ErrBadResponse, key)
	}
	f, ok := v.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: field %q is %T, want number", ErrBadResponse, key, v)
	}
	return decimal.NewFromFloat(f), nil
}

// stringSliceField reads an optional array of strings; a missing field is an
// empty slice, a present field with non-string members is an error.
func stringSliceField(m map[string]any, key string) ([]string, error) {
	arr, err := arrayField(m, key, false)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T, want string", ErrBadResponse, key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
