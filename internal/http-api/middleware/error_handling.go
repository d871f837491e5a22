package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "An error occurred."

// ErrorHandling is a Gin middleware that converts panics into a generic JSON
// 500 response. The cause is logged server-side and never echoed to the
// client.
func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID := c.GetString("requestID")
				log.Printf("[%s] panic recovered: %v", requestID, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": genericErrorMessage,
				})
			}
		}()
		c.Next()
	}
}
