package classify

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"emailtriage/internal/llm"
	"emailtriage/internal/model"
	"emailtriage/pkg/metrics"
)

// Responder produces the suggested reply for a classified email.
// SuggestReply is total: any model failure yields the canned reply for
// the category.
type Responder struct {
	client llm.Client
	logger *zap.Logger
}

func NewResponder(client llm.Client, logger *zap.Logger) *Responder {
	return &Responder{
		client: client,
		logger: logger,
	}
}

// SuggestReply generates a reply in Brazilian Portuguese for the email,
// shaped by its category.
func (r *Responder) SuggestReply(ctx context.Context, text string, category model.Category) string {
	if r.client == nil {
		return cannedReply(category)
	}

	prompt := respondProductivePrompt(text)
	if category == model.CategoryUnproductive {
		prompt = respondUnproductivePrompt(text)
	}

	start := time.Now()
	content, err := r.client.Chat(ctx, llm.Request{
		Model: respondModel,
		Messages: []llm.Message{
			{Role: "system", Content: respondSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   150,
	})
	if err != nil {
		metrics.RecordLLMCallLatency("respond", "error", time.Since(start))
		r.logger.Warn("Model reply generation failed, using canned reply",
			zap.Error(err),
			zap.String("category", string(category)),
		)
		return cannedReply(category)
	}
	metrics.RecordLLMCallLatency("respond", "ok", time.Since(start))

	content = strings.TrimSpace(content)
	if content == "" {
		return cannedReply(category)
	}
	return content
}

func cannedReply(category model.Category) string {
	if category == model.CategoryUnproductive {
		return cannedReplyUnproductive
	}
	return cannedReplyProductive
}
