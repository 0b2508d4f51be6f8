package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSON strips Markdown fences and surrounding prose that models sometimes
// add despite instructions, keeping the outermost JSON object or array.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON value if prose surrounds it.
	start, closer := strings.Index(s, "{"), "}"
	if arr := strings.Index(s, "["); start == -1 || (arr != -1 && arr < start) {
		start, closer = arr, "]"
	}
	if start != -1 {
		if end := strings.LastIndex(s, closer); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// ParseJSON decodes model text into a generic JSON value after cleanup.
func ParseJSON(raw string) (any, error) {
	clean := CleanJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("llm: empty model output")
	}
	var v any
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return nil, fmt.Errorf("llm: model output is not valid JSON: %w", err)
	}
	return v, nil
}
