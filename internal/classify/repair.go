package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"emailtriage/internal/model"
)

// repairAndParse turns raw model output into a Classification. Model
// output is untrusted: it may be wrapped in markdown code fences or
// surrounded by prose, and the fields may be missing or malformed.
// The repair chain is: strip fences, extract the first-{ to last-}
// span, unmarshal, then validate field by field.
func repairAndParse(raw string) (model.Classification, error) {
	jsonStr, ok := extractJSON(raw)
	if !ok {
		return model.Classification{}, fmt.Errorf("no JSON object found in response")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return model.Classification{}, fmt.Errorf("unmarshaling model response: %w", err)
	}

	category, hasCategory := fields["category"]
	confidence, hasConfidence := fields["confidence"]
	reasoning, hasReasoning := fields["reasoning"]
	if !hasCategory || !hasConfidence || !hasReasoning {
		return model.Classification{}, fmt.Errorf("model response missing required fields")
	}

	return model.Classification{
		Category:   model.ParseCategory(asString(category)),
		Confidence: coerceConfidence(confidence),
		Reasoning:  asString(reasoning),
	}, nil
}

// extractJSON strips markdown code fences and returns the greedy span
// between the first "{" and the last "}".
func extractJSON(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// coerceConfidence accepts whatever the model put in the confidence
// field: numbers are clamped into [0,1], anything else becomes 0.8.
func coerceConfidence(v any) float64 {
	switch n := v.(type) {
	case float64:
		return model.ClampConfidence(n)
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%f", &f); err == nil {
			return model.ClampConfidence(f)
		}
	}
	return 0.8
}
