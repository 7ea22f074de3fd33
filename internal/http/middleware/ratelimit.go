package middleware

import (
	"net/http"

	"github.com/didip/tollbooth/v6"
	"github.com/gin-gonic/gin"
)

// RateLimit creates per-IP rate limiting middleware for credential
// endpoints, a second line of defense in front of the lockout counter.
func RateLimit(perSecond float64) gin.HandlerFunc {
	lmt := tollbooth.NewLimiter(perSecond, nil)
	lmt.SetIPLookups([]string{"X-Forwarded-For", "RemoteAddr", "X-Real-IP"})

	return gin.HandlerFunc(func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	})
}
