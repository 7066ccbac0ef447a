package transcription

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// RegisterRoutes registers transcription and transcript routes. transcribeLimit
// guards job creation, which calls the remote backend.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, transcribeLimit gin.HandlerFunc) {
	if transcribeLimit == nil {
		transcribeLimit = func(c *gin.Context) { c.Next() }
	}

	transcriptions := router.Group("/transcriptions")
	transcriptions.POST("", transcribeLimit, Create(deps))
	transcriptions.GET("/:id", Get(deps))
	transcriptions.GET("/:id/progress", Progress(deps))

	router.GET("/transcript", GetTranscript(deps))
	router.PUT("/transcript", PutTranscript(deps))
	router.DELETE("/transcript/error", ClearError(deps))
}
