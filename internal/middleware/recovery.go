package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware creates a Gin middleware for recovering from panics.
// It returns a generic 500 JSON error.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
				)
				// Check if the response has already been written
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
				}
			}
		}()
		c.Next()
	}
}
