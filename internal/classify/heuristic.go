package classify

import (
	"regexp"
	"strconv"
	"strings"

	"emailtriage/internal/model"
)

// Keywords signaling a courtesy message that needs no action. Matched
// as substrings against the lowercased text, so "agradec" also covers
// "agradecimento" and "agradecemos".
var unproductiveKeywords = []string{
	"improdutivo",
	"agradec",
	"obrigad",
	"parabén",
	"parabens",
	"congratul",
	"felicita",
	"thank",
	"boas festas",
	"feliz natal",
}

var confidencePattern = regexp.MustCompile(`(?i)confidence"?\s*[:=]\s*(-?[0-9]+(?:\.[0-9]+)?)`)

// heuristicCategory is the deterministic keyword tier: Improdutivo when
// an acknowledgement/thanks/congratulation term is present, Produtivo
// otherwise.
func heuristicCategory(text string) model.Category {
	lower := strings.ToLower(text)
	for _, kw := range unproductiveKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryUnproductive
		}
	}
	return model.CategoryProductive
}

// recoverConfidence tries to salvage a numeric confidence from raw model
// output that failed JSON parsing, via a loose confidence:<number>
// match. Defaults to 0.7.
func recoverConfidence(raw string) float64 {
	m := confidencePattern.FindStringSubmatch(raw)
	if len(m) != 2 {
		return 0.7
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.7
	}
	return model.ClampConfidence(f)
}
