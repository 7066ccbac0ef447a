package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service status, database connectivity, and the selected transcription backend
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}
		if deps != nil {
			response.Backend = deps.BackendName
		}

		status := http.StatusOK
		if response.Database["status"] == "error" {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]interface{} {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "error", "connected": false, "error": err.Error()}
	}

	return gin.H{"status": "connected", "connected": true}
}
