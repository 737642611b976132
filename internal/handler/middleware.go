package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request on the http component logger.
// 5xx responses log at error level together with whatever the handler
// attached via c.Error.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "handler").Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := l.Info()
		switch {
		case status >= 500:
			event = l.Error()
			if err := c.Errors.Last(); err != nil {
				event = event.Err(err.Err)
			}
		case status >= 400:
			event = l.Warn()
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
