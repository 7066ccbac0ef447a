package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
	"golang.org/x/time/rate"
)

// DefaultMaxBodyBytes bounds JSON request bodies
const DefaultMaxBodyBytes = 1024 * 1024

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(DefaultMaxBodyBytes)
}

// RequestSizeLimitWithSize rejects declared oversize bodies up front and caps
// the rest while they are read
func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			if c.Request.ContentLength > maxBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "request body too large",
					Error:   string(apperrors.ErrCodeValidation),
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit limits each client IP within scope. Limiters for
// different scopes are independent even though they share one map.
func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, scope string, rps int, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return func(c *gin.Context) {
		key := scope + "|" + c.ClientIP()

		limiterInterface, _ := rateLimiters.LoadOrStore(key, &clientLimiter{
			limiter:  rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst),
			lastSeen: time.Now(),
		})

		cl := limiterInterface.(*clientLimiter)
		cl.lastSeen = time.Now()

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Rate limit exceeded. Please slow down your requests.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pruneRateLimiters(rateLimiters, time.Now(), 10*time.Minute)
		case <-cleanupStop:
			return
		}
	}
}

func pruneRateLimiters(rateLimiters *sync.Map, now time.Time, idle time.Duration) {
	rateLimiters.Range(func(key, value interface{}) bool {
		cl, ok := value.(*clientLimiter)
		if !ok || now.Sub(cl.lastSeen) > idle {
			rateLimiters.Delete(key)
		}
		return true
	})
}
