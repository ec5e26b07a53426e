package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an ID (generated unless the
// client sent X-Request-ID) and writes one access line per request after
// the handler chain completes. The ID also lands in the response meta.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		log.Printf("%s %s %s -> %d in %v rid=%s",
			c.ClientIP(),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			requestID,
		)

		for _, e := range c.Errors {
			log.Printf("rid=%s handler error: %v", requestID, e.Err)
		}
	}
}
