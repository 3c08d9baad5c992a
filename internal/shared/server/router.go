package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/documents"
	"summarizer-backend/internal/progress"
	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/metrics"
	"summarizer-backend/internal/shared/server/middleware"
	"summarizer-backend/internal/shared/server/respond"
	"summarizer-backend/internal/summaries"
)

// RouterDeps carries the handlers the router mounts. Build them via
// bootstrap.Build; the router itself owns no dependencies.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	SummaryHandler  *summaries.Handler
	ProgressHandler *progress.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.SummaryHandler != nil {
		deps.SummaryHandler.RegisterRoutes(api)
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
