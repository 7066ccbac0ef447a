package audio

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// RegisterRoutes registers audio and capture routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/audio", Upload(deps))
	router.POST("/audio/url", LoadURL(deps))
	router.GET("/audio", Get(deps))
	router.DELETE("/audio", Delete(deps))
	router.POST("/capture/:action", Control(deps))
}
