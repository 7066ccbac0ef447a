package export

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// RegisterRoutes registers export routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/export", Get(deps))
	router.POST("/export/bundle", Bundle(deps))
}
