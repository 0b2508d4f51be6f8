package engine

import (
	"errors"
	"testing"
)

func TestParseAnalysisValid(t *testing.T) {
	raw := "```json\n" + `{
  "recommendations": [
    {"category_name": "Food", "recommended_limit": 420.5, "reasoning": "steady spend"}
  ],
  "patterns": ["eats out on weekends"],
  "suggestions": ["set a dining cap"]
}` + "\n```"

	res, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if len(res.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(res.Recommendations))
	}
	rec := res.Recommendations[0]
	if rec.Category != "Food" || rec.Reasoning != "steady spend" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
	if !rec.RecommendedLimit.Equal(d("420.5")) {
		t.Errorf("limit = %s, want 420.5", rec.RecommendedLimit)
	}
	if len(res.Patterns) != 1 || len(res.Suggestions) != 1 {
		t.Errorf("patterns/suggestions not carried through: %+v", res)
	}
}

func TestParseAnalysisOptionalArraysMayBeAbsent(t *testing.T) {
	res, err := parseAnalysis(`{"recommendations": []}`)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if len(res.Recommendations) != 0 || len(res.Patterns) != 0 || len(res.Suggestions) != 0 {
		t.Errorf("want empty result, got %+v", res)
	}
}

func TestParseAnalysisRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "sorry, I cannot help with that"},
		{"top-level array", `[1,2,3]`},
		{"missing recommendations", `{"patterns": []}`},
		{"recommendation not object", `{"recommendations": ["Food"]}`},
		{"missing category_name", `{"recommendations": [{"recommended_limit": 1, "reasoning": "x"}]}`},
		{"limit as string", `{"recommendations": [{"category_name": "Food", "recommended_limit": "420", "reasoning": "x"}]}`},
		{"reasoning as number", `{"recommendations": [{"category_name": "Food", "recommended_limit": 420, "reasoning": 7}]}`},
		{"pattern not string", `{"recommendations": [], "patterns": [42]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseAnalysis(tc.raw); !errors.Is(err, ErrBadResponse) {
				t.Errorf("got %v, want ErrBadResponse", err)
			}
		})
	}
}

func TestParseAdaptationValid(t *testing.T) {
	raw := `{
  "adjustments": [
    {"category_name": "Rent", "new_limit": 960, "adjustment_percentage": -20, "reasoning": "tighten up"}
  ],
  "overall_advice": "hold steady"
}`
	res, err := parseAdaptation(raw)
	if err != nil {
		t.Fatalf("parseAdaptation: %v", err)
	}
	adj := res.Adjustments[0]
	if adj.Category != "Rent" || adj.AdjustmentPercent != -20 {
		t.Errorf("unexpected adjustment %+v", adj)
	}
	if !adj.NewLimit.Equal(d("960")) {
		t.Errorf("new limit = %s, want 960", adj.NewLimit)
	}
	if res.OverallAdvice != "hold steady" {
		t.Errorf("advice = %q", res.OverallAdvice)
	}
}

func TestParseAdaptationRequiresAdvice(t *testing.T) {
	if _, err := parseAdaptation(`{"adjustments": []}`); !errors.Is(err, ErrBadResponse) {
		t.Errorf("got %v, want ErrBadResponse for missing overall_advice", err)
	}
}

func TestParseInsightsShapes(t *testing.T) {
	bare, err := parseInsights(`["a", "b", "c"]`)
	if err != nil || len(bare) != 3 {
		t.Fatalf("bare array: %v %v", bare, err)
	}
	wrapped, err := parseInsights(`{"insights": ["x"]}`)
	if err != nil || len(wrapped) != 1 {
		t.Fatalf("wrapped object: %v %v", wrapped, err)
	}
}

func TestParseInsightsRejectsBadShapes(t *testing.T) {
	for _, raw := range []string{
		`"just a string"`,
		`{"other": []}`,
		`[1, 2]`,
		`[]`,
	} {
		if _, err := parseInsights(raw); !errors.Is(err, ErrBadResponse) {
			t.Errorf("parseInsights(%q): got %v, want ErrBadResponse", raw, err)
		}
	}
}
