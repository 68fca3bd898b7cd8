package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one zerolog line per request.
func RequestLogger(c *gin.Context) {
	start := time.Now()

	c.Next()

	event := log.Info()
	switch {
	case c.Writer.Status() >= http.StatusInternalServerError:
		event = log.Error()
	case c.Writer.Status() >= http.StatusBadRequest:
		event = log.Warn()
	}

	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Str("ip", c.ClientIP()).
		Msg("request")
}
