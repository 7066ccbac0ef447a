package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// RegisterRoutes registers session and preference routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	sessions := router.Group("/sessions")
	sessions.GET("", List(deps))
	sessions.POST("", Create(deps))
	sessions.DELETE("", Reset(deps))
	sessions.GET("/:id", Get(deps))
	sessions.PATCH("/:id", Rename(deps))
	sessions.DELETE("/:id", Delete(deps))
	sessions.POST("/:id/select", Select(deps))
	sessions.PUT("/:id/transcript", Commit(deps))

	router.GET("/preferences", GetPreferences(deps))
	router.PUT("/preferences", PutPreferences(deps))
}
