package editor

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// RegisterRoutes registers transcript editor routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	editor := router.Group("/editor")
	editor.GET("", Get(deps))
	editor.PUT("", Update(deps))
	editor.POST("/edit", Edit(deps))
	editor.POST("/save", Save(deps))
	editor.POST("/cancel", Cancel(deps))
}
