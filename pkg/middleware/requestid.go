package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"leadcapture/pkg/requestctx"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an ID, reusing the caller's when one is sent.
// The ID also rides on the request context's log entry.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		entry := log.WithField(requestIDKey, id)
		c.Request = c.Request.WithContext(requestctx.WithLogger(c.Request.Context(), entry))
		c.Next()
	}
}

// Logger returns the request's log entry tagged with prefix
func Logger(c *gin.Context, prefix string) *log.Entry {
	return requestctx.Logger(c.Request.Context()).WithField("prefix", prefix)
}
