package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emailtriage/internal/cache"
	"emailtriage/internal/classify"
	"emailtriage/internal/model"
	"emailtriage/internal/textsource"
)

type ClassifyHandler struct {
	engine    *classify.Engine
	responder *classify.Responder
	cache     *cache.ResultCache // may be nil
	logger    *zap.Logger
}

func NewClassifyHandler(engine *classify.Engine, responder *classify.Responder, resultCache *cache.ResultCache, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		engine:    engine,
		responder: responder,
		cache:     resultCache,
		logger:    logger,
	}
}

// Classify handles POST /classify: resolve the email text, classify it,
// generate a suggested reply and assemble the response envelope.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	text, err := textsource.Resolve(c)
	if err != nil {
		h.logger.Info("Rejected classify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErrorMessage(err)})
		return
	}

	ctx := c.Request.Context()

	if entry, ok := h.cache.Get(ctx, text); ok {
		c.JSON(http.StatusOK, model.NewEnvelope(text, entry.Classification, entry.SuggestedResponse))
		return
	}

	// two sequential model calls: the reply prompt depends on the category
	cls := h.engine.Classify(ctx, text)
	suggested := h.responder.SuggestReply(ctx, text, cls.Category)

	h.cache.Set(ctx, text, cache.Entry{
		Classification:    cls,
		SuggestedResponse: suggested,
	})

	h.logger.Info("Email classified",
		zap.String("category", string(cls.Category)),
		zap.Float64("confidence", cls.Confidence),
		zap.String("service_used", cls.ServiceUsed),
	)

	c.JSON(http.StatusOK, model.NewEnvelope(text, cls, suggested))
}

// inputErrorMessage maps resolver errors to the product's user-facing
// Portuguese messages.
func inputErrorMessage(err error) string {
	switch {
	case errors.Is(err, textsource.ErrEmptyFilename):
		return "Nenhum arquivo selecionado"
	case errors.Is(err, textsource.ErrNoExtractableText):
		return "Não foi possível extrair texto do PDF"
	case errors.Is(err, textsource.ErrUnsupportedFormat):
		return "Formato de arquivo não suportado. Use .txt ou .pdf"
	case errors.Is(err, textsource.ErrTooShort):
		return "Texto muito curto ou vazio"
	default:
		return "Nenhum texto ou arquivo fornecido"
	}
}
