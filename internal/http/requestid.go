package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation ID in both directions.
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// maxRequestIDLength bounds client-supplied IDs before they reach the logs.
const maxRequestIDLength = 64

// RequestIDMiddleware attaches a correlation ID to every request. A client
// supplied X-Request-ID is kept; otherwise a time-ordered UUIDv7 is issued.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = newRequestID()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// GetRequestID returns the request's correlation ID, or "" outside a request.
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// requestLogger is gin's access log with the request ID appended.
func requestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		id, _ := p.Keys[contextKeyRequestID].(string)
		return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | %s\n%s",
			p.TimeStamp.Format(time.RFC3339),
			p.StatusCode,
			p.Latency,
			p.ClientIP,
			p.Method,
			p.Path,
			id,
			p.ErrorMessage,
		)
	})
}
