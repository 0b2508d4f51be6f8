package llm

import "testing"

func TestCleanJSONStripsFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"plain array", `["x","y"]`, `["x","y"]`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"leading prose", "Here is the result:\n{\"a\":1}", `{"a":1}`},
		{"trailing prose", "{\"a\":1}\nHope this helps!", `{"a":1}`},
		{"array before object text", "[{\"a\":1}]", `[{"a":1}]`},
		{"whitespace", "   {\"a\": 1}  \n", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSON(tc.in); got != tc.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON("```json\n{\"recommendations\": []}\n```")
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("want object, got %T", v)
	}
	if _, ok := obj["recommendations"]; !ok {
		t.Error("missing recommendations key")
	}
}

func TestParseJSONRejectsProse(t *testing.T) {
	if _, err := ParseJSON("I could not produce JSON for this request."); err == nil {
		t.Fatal("want error for non-JSON output")
	}
	if _, err := ParseJSON(""); err == nil {
		t.Fatal("want error for empty output")
	}
}

func TestForConfig(t *testing.T) {
	if p := ForConfig("openai", "sk-test", "", 0); p == nil || p.Name() != "openai" {
		t.Fatal("want openai provider")
	}
	if p := ForConfig("Anthropic", "key", "", 0); p == nil || p.Name() != "anthropic" {
		t.Fatal("want anthropic provider")
	}
	if p := ForConfig("", "key", "", 0); p != nil {
		t.Fatal("want nil provider for empty name")
	}
	if p := ForConfig("gemini", "key", "", 0); p != nil {
		t.Fatal("want nil provider for unknown name")
	}
}

func TestUnconfiguredProvidersReturnErrNotConfigured(t *testing.T) {
	for _, p := range []Provider{
		NewOpenAI("", "", 0),
		NewAnthropic("   ", "", 0),
	} {
		if _, err := p.Generate(t.Context(), Request{Prompt: "hi"}); err != ErrNotConfigured {
			t.Errorf("%s: got %v, want ErrNotConfigured", p.Name(), err)
		}
	}
}
