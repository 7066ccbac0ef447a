package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/scriptify/api/audio"
	"github.com/killallgit/scriptify/api/editor"
	"github.com/killallgit/scriptify/api/export"
	"github.com/killallgit/scriptify/api/health"
	"github.com/killallgit/scriptify/api/sessions"
	"github.com/killallgit/scriptify/api/transcription"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/api/version"
	_ "github.com/killallgit/scriptify/docs/swagger"
	"github.com/killallgit/scriptify/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	if deps == nil || deps.Workspace == nil {
		return fmt.Errorf("workspace is not configured")
	}

	limits := rateLimits()
	passthrough := func(c *gin.Context) { c.Next() }
	defaultLimit, transcribeLimit := gin.HandlerFunc(passthrough), gin.HandlerFunc(passthrough)
	if limits.Enabled {
		defaultLimit = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "default", limits.DefaultRPS, limits.DefaultBurst)
		transcribeLimit = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "transcribe", limits.TranscribeRPS, limits.TranscribeBurst)
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")
	v1.Use(defaultLimit)

	// Uploads carry audio; everything else is a small JSON body
	uploads := v1.Group("")
	uploads.Use(RequestSizeLimitWithSize(maxUploadBytes(deps)))
	audio.RegisterRoutes(uploads, deps)

	rest := v1.Group("")
	rest.Use(RequestSizeLimit())
	transcription.RegisterRoutes(rest, deps, transcribeLimit)
	sessions.RegisterRoutes(rest, deps)
	editor.RegisterRoutes(rest, deps)

	// Rendering documents and archives shares the transcription budget
	exports := rest.Group("")
	exports.Use(transcribeLimit)
	export.RegisterRoutes(exports, deps)

	return nil
}

func rateLimits() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:         config.GetBool("rate_limiting.enabled"),
		TranscribeRPS:   config.GetInt("rate_limiting.transcribe_rps"),
		TranscribeBurst: config.GetInt("rate_limiting.transcribe_burst"),
		DefaultRPS:      config.GetInt("rate_limiting.default_rps"),
		DefaultBurst:    config.GetInt("rate_limiting.default_burst"),
	}
}

func maxUploadBytes(deps *types.Dependencies) int64 {
	if deps.MaxUploadBytes > 0 {
		// Leave room for the multipart envelope
		return deps.MaxUploadBytes + 64*1024
	}
	return 100 * 1024 * 1024
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
