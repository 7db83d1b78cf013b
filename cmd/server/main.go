package main

import (
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"emailtriage/internal/cache"
	"emailtriage/internal/classify"
	"emailtriage/internal/config"
	"emailtriage/internal/handler"
	"emailtriage/internal/httpserver"
	"emailtriage/internal/llm"
	"emailtriage/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.Load()

	// The LLM client is process-wide immutable configuration: built once
	// here, shared read-only by all requests. No API key means the AI
	// path is disabled and every request runs on the fallback tier.
	var client llm.Client
	if cfg.OpenAI.APIKey != "" {
		client = llm.NewOpenAIClient(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.BaseURL,
			time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		)
		log.Info("AI service configured")
	} else {
		log.Warn("OPENAI_API_KEY not set, classification will use the heuristic fallback only")
	}

	resultCache := cache.New(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		log,
	)
	if resultCache == nil {
		log.Info("Result cache disabled (no redis addr configured)")
	}

	engine := classify.NewEngine(client, log)
	responder := classify.NewResponder(client, log)
	classifyHandler := handler.NewClassifyHandler(engine, responder, resultCache, log)

	router := httpserver.NewRouter(classifyHandler, log)

	log.Info("Starting email triage service", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
