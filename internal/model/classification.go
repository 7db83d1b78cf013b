package model

import "strings"

// Category is the triage outcome of an email. The wire values are the
// product's Portuguese labels; everything the model returns is coerced
// into one of the two.
type Category string

const (
	CategoryProductive   Category = "Produtivo"   // requires action or a reply
	CategoryUnproductive Category = "Improdutivo" // courtesy message, no action needed
)

// ParseCategory coerces an arbitrary model-produced label into a valid
// Category. Anything that is not one of the two canonical values becomes
// Produtivo: an unclassifiable email is treated as requiring action.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "improdutivo":
		return CategoryUnproductive
	case "produtivo":
		return CategoryProductive
	default:
		return CategoryProductive
	}
}

// Service tags for Classification.ServiceUsed.
const (
	ServiceAI       = "AI"
	ServiceFallback = "fallback"
)

// Classification is the structured result of classifying one email.
// It is never mutated after creation.
type Classification struct {
	Category    Category `json:"category"`
	Confidence  float64  `json:"confidence"`
	Reasoning   string   `json:"reasoning"`
	ServiceUsed string   `json:"service_used"`
}

// ClampConfidence forces a confidence into [0,1].
func ClampConfidence(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
