package classify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"emailtriage/internal/llm"
	"emailtriage/internal/model"
	"emailtriage/pkg/metrics"
)

// Engine classifies emails with the model and degrades gracefully when
// the model is unavailable or its output cannot be parsed. Classify is
// total: every path returns a well-formed Classification.
type Engine struct {
	client llm.Client
	logger *zap.Logger
}

// NewEngine creates the engine. A nil client means the AI path is
// disabled for the life of the process and every classification runs on
// the heuristic tier.
func NewEngine(client llm.Client, logger *zap.Logger) *Engine {
	return &Engine{
		client: client,
		logger: logger,
	}
}

// Classify returns a classification for the given email text. It never
// fails: transport errors fall back to a conservative Produtivo result
// and unparseable model output falls back to the keyword heuristic.
func (e *Engine) Classify(ctx context.Context, text string) model.Classification {
	var result model.Classification

	if e.client == nil {
		result = e.offlineFallback(text)
	} else {
		result = e.classifyWithModel(ctx, text)
	}

	metrics.IncrementEmailsClassified(string(result.Category), result.ServiceUsed)
	return result
}

func (e *Engine) classifyWithModel(ctx context.Context, text string) model.Classification {
	start := time.Now()
	raw, err := e.client.Chat(ctx, llm.Request{
		Model: classifyModel,
		Messages: []llm.Message{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: classifyPrompt(text)},
		},
		// low temperature to minimize format drift in the JSON output
		Temperature: 0.1,
		MaxTokens:   400,
	})
	if err != nil {
		metrics.RecordLLMCallLatency("classify", "error", time.Since(start))
		e.logger.Warn("Model classification call failed, using fallback",
			zap.Error(err),
		)
		return model.Classification{
			Category:    model.CategoryProductive,
			Confidence:  0.5,
			Reasoning:   fmt.Sprintf("Erro na IA, usando fallback: %v", err),
			ServiceUsed: model.ServiceFallback,
		}
	}
	metrics.RecordLLMCallLatency("classify", "ok", time.Since(start))

	result, err := repairAndParse(raw)
	if err != nil {
		e.logger.Warn("Model returned unparseable JSON, using heuristic",
			zap.Error(err),
			zap.String("raw", model.TruncateEllipsis(raw, 200)),
		)
		result = model.Classification{
			Category:   heuristicCategory(raw),
			Confidence: recoverConfidence(raw),
			Reasoning:  model.TruncateEllipsis(raw, 200),
		}
	}

	// any path that reached the model is tagged as AI, repaired or not
	result.ServiceUsed = model.ServiceAI
	return result
}

// offlineFallback classifies the email text itself with the keyword
// heuristic. Used when no API key is configured.
func (e *Engine) offlineFallback(text string) model.Classification {
	return model.Classification{
		Category:    heuristicCategory(text),
		Confidence:  0.7,
		Reasoning:   "Classificação heurística por palavras-chave (IA indisponível)",
		ServiceUsed: model.ServiceFallback,
	}
}
