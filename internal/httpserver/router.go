package httpserver

import (
	_ "embed"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"emailtriage/internal/handler"
	"emailtriage/pkg/metrics"
)

//go:embed static/index.html
var indexHTML []byte

type Router struct {
	Engine *gin.Engine
}

func NewRouter(classifyHandler *handler.ClassifyHandler, logger *zap.Logger) *Router {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(recoveryMiddleware(logger))
	r.Use(metricsMiddleware())
	r.Use(cors.Default()) // the front-end may be served from anywhere

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Single-page front-end
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	r.POST("/classify", classifyHandler.Classify)

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

// recoveryMiddleware converts panics into the product's 500 payload.
func recoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("Panic while handling request",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro interno do servidor",
			"details": fmt.Sprint(recovered),
		})
	})
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
