package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robworks/opsdocs/internal/api/models"
)

// RateLimit rejects requests whose client IP has exhausted its budget.
// allow is consulted per request; a nil allow disables the limit.
func RateLimit(allow func(ip string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow != nil && !allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
