package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows script-driven landing pages on other hosts to post leads.
// Listed origins may send credentials, so they can read and write the lead
// cookies. With no list any origin may call, but never with credentials.
func CORS(allowedOrigins ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
			setCORSMethods(c)
		case len(allowed) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
			setCORSMethods(c)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCORSMethods(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Accept-Language, X-Request-ID")
}
