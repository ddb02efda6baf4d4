package middleware

import (
	"log/slog"
	"time"

	"store-admin-service/pkg/ctxmanage"
	"store-admin-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger assigns every request a trace id (honoring an incoming X-Trace-Id
// from upstream) and logs the request outcome.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := c.Request.Header.Get("X-Trace-Id")
		if traceId == "" {
			traceId = uuid.NewString()
		}
		c.Set(ctxmanage.TraceIdKey, traceId)
		c.Writer.Header().Set("X-Trace-Id", traceId)

		start := time.Now()
		c.Next()

		slog.Info("request completed",
			slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method),
			slog.String("Path", c.Request.URL.Path),
			slog.Int("Status", c.Writer.Status()),
			slog.String("Duration", time.Since(start).String()),
		)
	}
}
