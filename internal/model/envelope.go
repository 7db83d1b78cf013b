package model

import (
	"strings"
	"time"
)

const (
	maxOriginalChars  = 500
	maxProcessedChars = 200
)

// Envelope is the outward-facing JSON payload of POST /classify. It
// exists only for the duration of the HTTP response.
type Envelope struct {
	Success           bool           `json:"success"`
	OriginalText      string         `json:"original_text"`
	ProcessedText     string         `json:"processed_text"`
	Classification    Classification `json:"classification"`
	SuggestedResponse string         `json:"suggested_response"`
	Mode              string         `json:"mode"`
	ServiceType       string         `json:"service_type"`
	Timestamp         string         `json:"timestamp"`
}

// NewEnvelope assembles the response payload for one classified email.
func NewEnvelope(text string, cls Classification, suggested string) Envelope {
	return Envelope{
		Success:           true,
		OriginalText:      TruncateEllipsis(text, maxOriginalChars),
		ProcessedText:     TruncateEllipsis(CollapseWhitespace(text), maxProcessedChars),
		Classification:    cls,
		SuggestedResponse: suggested,
		Mode:              "intelligent",
		ServiceType:       cls.ServiceUsed,
		Timestamp:         time.Now().Format(time.RFC3339),
	}
}

// CollapseWhitespace collapses runs of whitespace into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateEllipsis returns s unchanged if it has at most max runes,
// otherwise the first max runes followed by "...".
func TruncateEllipsis(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
